package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerConditionHelpers(L)
	registerActionHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Quest { title = "...", cols = 26, rows = 19, ... }
	L.SetGlobal("Quest", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.quest = tbl
		return 0
	}))

	// Item "id" { asset = "...", x = 2, y = 3, w = 1, h = 1 } — curried:
	// Item("id") returns a function that takes a table.
	L.SetGlobal("Item", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.items = append(coll.items, rawItem{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// Note "id" { number = 1, text = "...", icon = "..." } — curried.
	L.SetGlobal("Note", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.notes = append(coll.notes, rawNote{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// Card "id" { title = "...", body = "...", kind = "monster" } — curried.
	L.SetGlobal("Card", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.cards = append(coll.cards, rawCard{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// LogicRule("icon-1", "onSearch", {
	//   mode = "all",
	//   conditions = { FlagUnset("searched") },
	//   actions = { RevealRadius(1), SetFlag("searched") },
	// })
	L.SetGlobal("LogicRule", L.NewFunction(func(L *lua.LState) int {
		iconID := L.CheckString(1)
		triggerType := L.CheckString(2)
		tbl := L.CheckTable(3)

		coll.rules = append(coll.rules, rawRule{
			iconID:      iconID,
			triggerType: triggerType,
			table:       tbl,
			order:       coll.nextSourceOrder(),
		})
		return 0
	}))
}

func registerConditionHelpers(L *lua.LState) {
	// FlagSet("flag")
	L.SetGlobal("FlagSet", L.NewFunction(func(L *lua.LState) int {
		flag := L.CheckString(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("flag_set"))
		tbl.RawSetString("flag", lua.LString(flag))
		L.Push(tbl)
		return 1
	}))

	// FlagUnset("flag")
	L.SetGlobal("FlagUnset", L.NewFunction(func(L *lua.LState) int {
		flag := L.CheckString(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("flag_unset"))
		tbl.RawSetString("flag", lua.LString(flag))
		L.Push(tbl)
		return 1
	}))

	// FlagIs("flag", value)
	L.SetGlobal("FlagIs", L.NewFunction(func(L *lua.LState) int {
		flag := L.CheckString(1)
		value := L.CheckBool(2)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("flag_is"))
		tbl.RawSetString("flag", lua.LString(flag))
		tbl.RawSetString("value", lua.LBool(value))
		L.Push(tbl)
		return 1
	}))

	// ItemPresent("item-id")
	L.SetGlobal("ItemPresent", L.NewFunction(func(L *lua.LState) int {
		item := L.CheckString(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("item_present"))
		tbl.RawSetString("item", lua.LString(item))
		L.Push(tbl)
		return 1
	}))

	// NotePresent("note-id")
	L.SetGlobal("NotePresent", L.NewFunction(func(L *lua.LState) int {
		note := L.CheckString(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("note_present"))
		tbl.RawSetString("note", lua.LString(note))
		L.Push(tbl)
		return 1
	}))
}

func registerActionHelpers(L *lua.LState) {
	// RevealTiles { {2, 3}, {4, 5} } — also accepts {x=2, y=3} entries.
	L.SetGlobal("RevealTiles", L.NewFunction(func(L *lua.LState) int {
		tiles := L.CheckTable(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("reveal_tiles"))
		tbl.RawSetString("tiles", tiles)
		L.Push(tbl)
		return 1
	}))

	// RevealRadius(1)
	L.SetGlobal("RevealRadius", L.NewFunction(func(L *lua.LState) int {
		radius := L.CheckNumber(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("reveal_radius"))
		tbl.RawSetString("radius", radius)
		L.Push(tbl)
		return 1
	}))

	// RevealEntities("icon-1", "icon-2", ...)
	L.SetGlobal("RevealEntities", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("reveal_entities"))
		tbl.RawSetString("ids", varargStrings(L))
		L.Push(tbl)
		return 1
	}))

	// AddNarrative("note-1", ...)
	L.SetGlobal("AddNarrative", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("add_narrative"))
		tbl.RawSetString("ids", varargStrings(L))
		L.Push(tbl)
		return 1
	}))

	// RevealCard("card-1", ...)
	L.SetGlobal("RevealCard", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("reveal_card"))
		tbl.RawSetString("ids", varargStrings(L))
		L.Push(tbl)
		return 1
	}))

	// SetFlag("flag")
	L.SetGlobal("SetFlag", L.NewFunction(func(L *lua.LState) int {
		flag := L.CheckString(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("set_flag"))
		tbl.RawSetString("flag", lua.LString(flag))
		L.Push(tbl)
		return 1
	}))

	// AddObjective("objective-1")
	L.SetGlobal("AddObjective", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("add_objective"))
		tbl.RawSetString("objective", lua.LString(id))
		L.Push(tbl)
		return 1
	}))
}

// varargStrings collects all string arguments into a Lua list table.
func varargStrings(L *lua.LState) *lua.LTable {
	tbl := L.NewTable()
	for i := 1; i <= L.GetTop(); i++ {
		tbl.Append(lua.LString(L.CheckString(i)))
	}
	return tbl
}
