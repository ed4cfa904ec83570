package loader

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/nholm/questdeck/types"
)

var testOpts = Options{DefaultCols: 26, DefaultRows: 19}

func TestLoad_FullQuest(t *testing.T) {
	defs, err := Load("testdata/crypt", testOpts)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if defs.Title != "The Hollow Crypt" {
		t.Errorf("Title = %q", defs.Title)
	}
	if defs.Author != "N. Holm" || defs.Version != "1.0.0" {
		t.Errorf("Author/Version = %q/%q", defs.Author, defs.Version)
	}
	if defs.Cols != 26 || defs.Rows != 19 {
		t.Errorf("grid = %dx%d, want 26x19", defs.Cols, defs.Rows)
	}
	if len(defs.Items) != 2 || len(defs.Notes) != 1 || len(defs.Cards) != 2 {
		t.Fatalf("counts: %d items, %d notes, %d cards",
			len(defs.Items), len(defs.Notes), len(defs.Cards))
	}
	if len(defs.Rules) != 2 {
		t.Fatalf("got %d rules, want 2", len(defs.Rules))
	}
}

func TestLoad_CompilesItems(t *testing.T) {
	defs, err := Load("testdata/crypt", testOpts)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	chest := defs.Items[0]
	if chest.ID != "icon-1" || chest.Asset != "card-chest" {
		t.Errorf("item 1 = %+v", chest)
	}
	if chest.X != 2 || chest.Y != 3 || chest.BaseW != 1 || chest.BaseH != 1 {
		t.Errorf("item 1 placement = %+v", chest)
	}

	trap := defs.Items[1]
	if trap.BaseW != 2 || trap.BaseH != 2 || trap.Rotation != 90 {
		t.Errorf("item 2 = %+v", trap)
	}
}

func TestLoad_CompilesRules(t *testing.T) {
	defs, err := Load("testdata/crypt", testOpts)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	search := defs.Rules[0]
	if search.IconID != "icon-1" || search.TriggerType != types.TriggerSearch {
		t.Fatalf("rule 1 header = %+v", search)
	}
	if search.Mode != types.ModeAll {
		t.Errorf("rule 1 mode = %q", search.Mode)
	}
	if len(search.Conditions) != 1 ||
		search.Conditions[0].Kind != types.CondFlagUnset ||
		search.Conditions[0].Operand != "chest-searched" {
		t.Errorf("rule 1 conditions = %+v", search.Conditions)
	}
	if len(search.Actions) != 7 {
		t.Fatalf("rule 1 has %d actions, want 7", len(search.Actions))
	}

	// Both tile forms compile: {2,3} and {x=3,y=3}.
	wantTiles := []types.Tile{{X: 2, Y: 3}, {X: 3, Y: 3}}
	if !reflect.DeepEqual(search.Actions[0].Tiles, wantTiles) {
		t.Errorf("tiles = %v, want %v", search.Actions[0].Tiles, wantTiles)
	}
	if search.Actions[1].Kind != types.ActRevealRadius || search.Actions[1].Radius != 1 {
		t.Errorf("action 2 = %+v", search.Actions[1])
	}
	if search.Actions[5].Kind != types.ActSetFlag || search.Actions[5].Flag != "chest-searched" {
		t.Errorf("action 6 = %+v", search.Actions[5])
	}
	if search.Actions[6].ObjectiveID != "open-the-chest" {
		t.Errorf("action 7 = %+v", search.Actions[6])
	}

	enter := defs.Rules[1]
	if enter.Mode != types.ModeAny {
		t.Errorf("rule 2 mode = %q", enter.Mode)
	}
	if enter.Conditions[1].Kind != types.CondFlagIs ||
		enter.Conditions[1].Operand != "party-careful" ||
		enter.Conditions[1].Value {
		t.Errorf("rule 2 condition 2 = %+v", enter.Conditions[1])
	}

	// Source order is assigned in definition order.
	if search.SourceOrder >= enter.SourceOrder {
		t.Errorf("source order not increasing: %d >= %d",
			search.SourceOrder, enter.SourceOrder)
	}
}

func TestLoad_GridDefaultsFromOptions(t *testing.T) {
	defs, err := Load("testdata/defaults", testOpts)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if defs.Cols != 26 || defs.Rows != 19 {
		t.Errorf("grid = %dx%d, want the 26x19 defaults", defs.Cols, defs.Rows)
	}
}

func TestLoad_MissingQuestBlock(t *testing.T) {
	dir := writeQuestDir(t, map[string]string{
		"icons.lua": `Item "icon-1" { x = 0, y = 0 }`,
	})

	_, err := Load(dir, testOpts)
	if err == nil || !strings.Contains(err.Error(), "no Quest {} block") {
		t.Errorf("err = %v", err)
	}
}

func TestLoad_MissingTitleFailsValidation(t *testing.T) {
	dir := writeQuestDir(t, map[string]string{
		"quest.lua": `Quest { cols = 10, rows = 10 }`,
	})

	_, err := Load(dir, testOpts)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if len(ve.Errors) == 0 || !strings.Contains(ve.Errors[0], "title") {
		t.Errorf("Errors = %v", ve.Errors)
	}
}

func TestLoad_UnknownCardRefFailsValidation(t *testing.T) {
	dir := writeQuestDir(t, map[string]string{
		"quest.lua": `
Quest { title = "Q", cols = 10, rows = 10 }
Item "icon-1" { x = 1, y = 1 }
LogicRule("icon-1", "onSearch", {
  actions = { RevealCard("card-missing") },
})`,
	})

	_, err := Load(dir, testOpts)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	found := false
	for _, msg := range ve.Errors {
		if strings.Contains(msg, `unknown card "card-missing"`) {
			found = true
		}
	}
	if !found {
		t.Errorf("Errors = %v", ve.Errors)
	}
}

func TestLoad_DuplicateItemID(t *testing.T) {
	dir := writeQuestDir(t, map[string]string{
		"quest.lua": `
Quest { title = "Q", cols = 10, rows = 10 }
Item "icon-1" { x = 1, y = 1 }
Item "icon-1" { x = 2, y = 2 }`,
	})

	_, err := Load(dir, testOpts)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if !strings.Contains(ve.Errors[0], `duplicate item id "icon-1"`) {
		t.Errorf("Errors = %v", ve.Errors)
	}
}

func TestLoad_InvalidModeFails(t *testing.T) {
	dir := writeQuestDir(t, map[string]string{
		"quest.lua": `
Quest { title = "Q", cols = 10, rows = 10 }
Item "icon-1" { x = 1, y = 1 }
LogicRule("icon-1", "onSearch", { mode = "some" })`,
	})

	if _, err := Load(dir, testOpts); err == nil ||
		!strings.Contains(err.Error(), `invalid conditions mode "some"`) {
		t.Errorf("err = %v", err)
	}
}

func TestLoad_SandboxBlocksIO(t *testing.T) {
	dir := writeQuestDir(t, map[string]string{
		"quest.lua": `
Quest { title = "Q", cols = 10, rows = 10 }
dofile("/etc/passwd")`,
	})

	if _, err := Load(dir, testOpts); err == nil {
		t.Error("dofile should be unavailable in the sandbox")
	}
}

func TestLoad_LuaSyntaxError(t *testing.T) {
	dir := writeQuestDir(t, map[string]string{
		"quest.lua": `Quest { title = `,
	})

	if _, err := Load(dir, testOpts); err == nil {
		t.Error("syntax error should fail the load")
	}
}

func TestLoad_EmptyDirectory(t *testing.T) {
	if _, err := Load(t.TempDir(), testOpts); err == nil ||
		!strings.Contains(err.Error(), "no .lua files") {
		t.Errorf("err = %v", err)
	}
}

func TestSortedLuaFiles_QuestFirst(t *testing.T) {
	got := sortedLuaFiles([]string{"rules.lua", "quest.lua", "icons.lua"})
	want := []string{"quest.lua", "icons.lua", "rules.lua"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// writeQuestDir lays out quest files in a temp directory.
func writeQuestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}
