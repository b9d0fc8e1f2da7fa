package main

import (
	"runtime"
	"sync"
	"testing"

	"github.com/sqlgate/sqlgate/db"
	"github.com/sqlgate/sqlgate/dberr"
	"github.com/sqlgate/sqlgate/types"
)

func TestErrorSlotPerThread(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(2)

	failed := make(chan int32, 1)
	succeeded := make(chan int32, 1)
	ready := make(chan struct{})
	done := make(chan struct{})

	// One thread records a failure and holds its slot open
	go func() {
		defer wg.Done()
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		result(dberr.New(dberr.RowNotFound, "nothing here"))
		close(ready)
		<-done
		failed <- int32(sqlgate_get_last_error_code())
	}()

	// Another thread succeeds; its slot must stay clear and the other
	// thread's failure must stay put
	go func() {
		defer wg.Done()
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		<-ready
		result(nil)
		succeeded <- int32(sqlgate_get_last_error_code())
		close(done)
	}()

	wg.Wait()

	if code := <-succeeded; code != int32(dberr.Success) {
		t.Errorf("Expected Success on the clean thread, got %d", code)
	}
	if code := <-failed; code != int32(dberr.RowNotFound) {
		t.Errorf("Expected RowNotFound preserved on the failing thread, got %d", code)
	}
}

func TestErrorSlotClearedOnSuccess(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	result(dberr.New(dberr.PoolClosed, "gone"))
	if code := sqlgate_get_last_error_code(); int32(code) != int32(dberr.PoolClosed) {
		t.Fatalf("Expected PoolClosed, got %d", code)
	}

	result(nil)
	if code := sqlgate_get_last_error_code(); int32(code) != int32(dberr.Success) {
		t.Errorf("Expected Success after a clean call, got %d", code)
	}
	if msg := sqlgate_get_last_error_message(); msg != nil {
		sqlgate_cstring_free(msg)
		t.Error("Expected no message after a clean call")
	}
}

func TestHandleRegistry(t *testing.T) {
	settings := db.NewSettings()
	h := register(settings)

	got, ok := lookup[*db.Settings](h)
	if !ok || got != settings {
		t.Fatal("Expected to look the registered value back up")
	}

	// Wrong type at the same handle misses
	if _, ok := lookup[*db.Connection](h); ok {
		t.Error("Expected a type mismatch to miss")
	}

	released, ok := release[*db.Settings](h)
	if !ok || released != settings {
		t.Fatal("Expected release to hand the value back")
	}
	if _, ok := lookup[*db.Settings](h); ok {
		t.Error("Expected the handle to be gone after release")
	}
}

func TestSettingsViewAliasesConnection(t *testing.T) {
	settingsHandle := connection_settings_new()
	connHandle := connection_new(settingsHandle)
	if connHandle == 0 {
		t.Fatal("connection_new failed")
	}

	viewHandle := connection_get_settings(connHandle)
	if viewHandle == 0 {
		t.Fatal("connection_get_settings failed")
	}

	// Edits through the view reach the connection
	view, ok := lookup[*db.Settings](viewHandle)
	if !ok {
		t.Fatal("Expected a settings handle back")
	}
	view.DatabaseName = "orders"
	if code := connection_settings_set_port(viewHandle, 3307); code != 0 {
		t.Fatalf("set_port through the view failed with code %d", code)
	}

	conn, ok := lookup[*db.Connection](connHandle)
	if !ok {
		t.Fatal("Expected the connection handle back")
	}
	if conn.Settings().DatabaseName != "orders" {
		t.Errorf("Expected the database name edit to reach the connection, got %q", conn.Settings().DatabaseName)
	}
	if conn.Settings().Port != 3307 {
		t.Errorf("Expected the port edit to reach the connection, got %d", conn.Settings().Port)
	}

	// Freeing the view releases only the registry entry
	connection_settings_free(viewHandle)
	if conn.Settings().DatabaseName != "orders" {
		t.Error("Freeing the view disturbed the connection's settings")
	}

	connection_free(connHandle)
}

func TestPlaceholderAddReturnsAdjustableEntry(t *testing.T) {
	vecHandle := placeholder_argument_vector_new()
	entryHandle := vecHandle // same handle type for the out-param
	if code := placeholder_argument_vector_add(vecHandle, 1, nil, 0, &entryHandle); code != 0 {
		t.Fatalf("add failed with code %d", code)
	}

	entry, ok := lookup[*types.NativeType](entryHandle)
	if !ok {
		t.Fatal("Expected an entry handle back from add")
	}
	if entry.Tag != types.Null {
		t.Fatalf("Expected a Null entry, got %v", entry.Tag)
	}

	// The handle aliases the vector's own entry, so an adjustment
	// lands in what dispatch will bind
	*entry = types.StringValue("adjusted")

	vector := takeArgs(vecHandle)
	if vector == nil || vector.Size() != 1 {
		t.Fatal("Expected the vector back with one argument")
	}

	placeholder_argument_free(entryHandle)
}

func TestPlaceholderArgumentSet(t *testing.T) {
	vecHandle := placeholder_argument_vector_new()
	entryHandle := vecHandle
	if code := placeholder_argument_vector_add(vecHandle, 1, nil, 0, &entryHandle); code != 0 {
		t.Fatalf("add failed with code %d", code)
	}

	if code := placeholder_argument_set(entryHandle, 1, nil, 0); code != 0 {
		t.Fatalf("set failed with code %d", code)
	}
	entry, _ := lookup[*types.NativeType](entryHandle)
	if entry.Tag != types.Null {
		t.Errorf("Expected Null after set, got %v", entry.Tag)
	}

	// A bad tag fails and leaves the entry alone
	if code := placeholder_argument_set(entryHandle, 99, nil, 0); code == 0 {
		t.Error("Expected set with an unknown tag to fail")
	}
	if entry.Tag != types.Null {
		t.Errorf("Expected the entry untouched after a failed set, got %v", entry.Tag)
	}

	placeholder_argument_free(entryHandle)
	drop(vecHandle)
}

func TestTakeArgsConsumesHandle(t *testing.T) {
	vector := db.NewPlaceholderArgumentVector()
	vector.Add(types.Int32Value(1))
	h := register(vector)

	if got := takeArgs(h); got != vector {
		t.Fatal("Expected takeArgs to return the registered vector")
	}
	// The handle is gone: a second dispatch binds nothing
	if got := takeArgs(h); got != nil {
		t.Error("Expected a consumed handle to yield nil")
	}
	if got := takeArgs(0); got != nil {
		t.Error("Expected the zero handle to yield nil")
	}
}

func TestNativeFromExternalValidation(t *testing.T) {
	if _, err := nativeFromExternal(types.Null, nil, 0); err != nil {
		t.Errorf("Expected Null to need no payload, got %v", err)
	}
	if _, err := nativeFromExternal(types.NoValue, nil, 0); !dberr.Is(err, dberr.InvalidNativeType) {
		t.Errorf("Expected InvalidNativeType for NoValue, got %v", err)
	}
	if _, err := nativeFromExternal(types.NativeTypeTag(99), nil, 0); !dberr.Is(err, dberr.InvalidNativeType) {
		t.Errorf("Expected InvalidNativeType for an unknown tag, got %v", err)
	}
	if _, err := nativeFromExternal(types.Int32, nil, 2); !dberr.Is(err, dberr.BufferNotEnough) {
		t.Errorf("Expected BufferNotEnough for a short payload, got %v", err)
	}
}
