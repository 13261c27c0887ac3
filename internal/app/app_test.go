package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fernwood-labs/carbontrack/internal/store"
)

// useTempDB points the command layer at a fresh database under t.TempDir
// and restores the previous path afterwards.
func useTempDB(t *testing.T) string {
	t.Helper()

	prev := dbPath
	dbPath = filepath.Join(t.TempDir(), "carbontrack.db")
	t.Cleanup(func() { dbPath = prev })

	// Keep config/env out of the resolution chain.
	t.Setenv("CARBONTRACK_DB", "")
	t.Setenv("CARBONTRACK_THRESHOLD", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	return dbPath
}

func TestCommandRegistration(t *testing.T) {
	want := []string{"init", "log", "categories", "suggest", "timeline", "top", "trend", "seed", "export"}

	registered := make(map[string]bool)
	for _, cmd := range RootCmd.Commands() {
		registered[cmd.Name()] = true
	}

	for _, name := range want {
		if !registered[name] {
			t.Errorf("%s command not registered with root command", name)
		}
	}
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	for _, name := range []string{"db", "log-level"} {
		if RootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("persistent flag %s not defined", name)
		}
	}
}

func TestDefaultCatalog(t *testing.T) {
	if len(defaultCatalog) != 12 {
		t.Errorf("default catalog has %d categories, want 12", len(defaultCatalog))
	}

	byName := make(map[string]store.Category)
	for _, cat := range defaultCatalog {
		if _, dup := byName[cat.Name]; dup {
			t.Errorf("duplicate catalog entry %s", cat.Name)
		}
		byName[cat.Name] = cat
	}

	elec, ok := byName["Electricity"]
	if !ok {
		t.Fatal("catalog missing Electricity")
	}
	if elec.Unit != "kWh" || elec.CarbonFactor != 0.233 {
		t.Errorf("Electricity = %+v", elec)
	}

	recycling, ok := byName["Waste Recycling"]
	if !ok {
		t.Fatal("catalog missing Waste Recycling")
	}
	if recycling.CarbonFactor >= 0 {
		t.Errorf("Waste Recycling factor = %v, want negative (emission offset)", recycling.CarbonFactor)
	}
}

func TestRunInit_CreatesSchemaAndCatalog(t *testing.T) {
	path := useTempDB(t)

	if err := runInit(initCmd, nil); err != nil {
		t.Fatalf("runInit failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("database file not created: %v", err)
	}

	st, err := store.New(path)
	if err != nil {
		t.Fatalf("failed to reopen database: %v", err)
	}
	defer st.Close()

	categories, err := st.ListCategories()
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(categories) != len(defaultCatalog) {
		t.Errorf("got %d categories, want %d", len(categories), len(defaultCatalog))
	}
}

func TestRunInit_NoCatalog(t *testing.T) {
	path := useTempDB(t)

	initNoCatalog = true
	defer func() { initNoCatalog = false }()

	if err := runInit(initCmd, nil); err != nil {
		t.Fatalf("runInit failed: %v", err)
	}

	st, err := store.New(path)
	if err != nil {
		t.Fatalf("failed to reopen database: %v", err)
	}
	defer st.Close()

	categories, err := st.ListCategories()
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(categories) != 0 {
		t.Errorf("got %d categories, want 0", len(categories))
	}
}

func TestRunInit_Idempotent(t *testing.T) {
	path := useTempDB(t)

	if err := runInit(initCmd, nil); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if err := runInit(initCmd, nil); err != nil {
		t.Fatalf("second init failed: %v", err)
	}

	st, err := store.New(path)
	if err != nil {
		t.Fatalf("failed to reopen database: %v", err)
	}
	defer st.Close()

	categories, err := st.ListCategories()
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(categories) != len(defaultCatalog) {
		t.Errorf("got %d categories after double init, want %d", len(categories), len(defaultCatalog))
	}
}

func TestRunLog_RecordsActivity(t *testing.T) {
	path := useTempDB(t)

	if err := runInit(initCmd, nil); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if err := runLog(logCmd, []string{"Electricity", "24.5"}); err != nil {
		t.Fatalf("runLog failed: %v", err)
	}

	st, err := store.New(path)
	if err != nil {
		t.Fatalf("failed to reopen database: %v", err)
	}
	defer st.Close()

	count, err := st.CountActivities()
	if err != nil {
		t.Fatalf("CountActivities failed: %v", err)
	}
	if count != 1 {
		t.Errorf("got %d activities, want 1", count)
	}
}

func TestRunLog_UnknownCategory(t *testing.T) {
	useTempDB(t)

	if err := runInit(initCmd, nil); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	err := runLog(logCmd, []string{"Teleportation", "5"})
	if err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestRunLog_NegativeQuantity(t *testing.T) {
	useTempDB(t)

	if err := runInit(initCmd, nil); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if err := runLog(logCmd, []string{"Electricity", "-3"}); err == nil {
		t.Fatal("expected error for negative quantity")
	}
}

func TestRunLog_InvalidDate(t *testing.T) {
	useTempDB(t)

	if err := runInit(initCmd, nil); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	logDate = "03/01/2024"
	defer func() { logDate = "" }()

	if err := runLog(logCmd, []string{"Electricity", "5"}); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestRunSuggest_RequiresInit(t *testing.T) {
	useTempDB(t)

	err := runSuggest(suggestCmd, nil)
	if err == nil {
		t.Fatal("expected error on uninitialized database")
	}
}

func TestRunSeed_ThenSuggest(t *testing.T) {
	useTempDB(t)

	if err := runInit(initCmd, nil); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	seedDays = 14
	seedSeed = 42
	defer func() { seedDays = 90; seedSeed = 0 }()

	if err := runSeed(seedCmd, nil); err != nil {
		t.Fatalf("runSeed failed: %v", err)
	}

	if err := runSuggest(suggestCmd, nil); err != nil {
		t.Fatalf("runSuggest failed: %v", err)
	}
}

func TestRunSeed_RequiresCatalog(t *testing.T) {
	useTempDB(t)

	initNoCatalog = true
	defer func() { initNoCatalog = false }()
	if err := runInit(initCmd, nil); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if err := runSeed(seedCmd, nil); err == nil {
		t.Fatal("expected error seeding without the default catalog")
	}
}

func TestRunExport_InvalidFormat(t *testing.T) {
	useTempDB(t)

	exportFormat = "xml"
	defer func() { exportFormat = "csv" }()

	if err := runExport(exportCmd, nil); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestRunExport_WatchRequiresOut(t *testing.T) {
	useTempDB(t)

	exportWatch = true
	defer func() { exportWatch = false }()

	if err := runExport(exportCmd, nil); err == nil {
		t.Fatal("expected error when --watch is used without --out")
	}
}

func TestRunExport_WritesFile(t *testing.T) {
	useTempDB(t)

	if err := runInit(initCmd, nil); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if err := runLog(logCmd, []string{"Electricity", "10"}); err != nil {
		t.Fatalf("log failed: %v", err)
	}

	outPath := filepath.Join(t.TempDir(), "carbon.json")
	exportFormat = "json"
	exportOut = outPath
	defer func() { exportFormat = "csv"; exportOut = "" }()

	if err := runExport(exportCmd, nil); err != nil {
		t.Fatalf("runExport failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("export file missing: %v", err)
	}
	if len(data) == 0 {
		t.Error("export file is empty")
	}
}
