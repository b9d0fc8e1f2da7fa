package main

/*
#include <stdint.h>
#include <stdlib.h>
#include <string.h>
#include <pthread.h>

static unsigned long sqlgate_thread_id(void) {
	return (unsigned long)pthread_self();
}
*/
import "C"
import (
	"errors"
	"sync"
	"unicode/utf8"
	"unsafe"

	"github.com/sqlgate/sqlgate/db"
	"github.com/sqlgate/sqlgate/dberr"
	"github.com/sqlgate/sqlgate/types"
)

// Handle registry. Every object crossing the boundary lives here under
// an opaque int64 handle; freeing a handle only drops the registry
// entry, the Go runtime reclaims the object.
var (
	handleMu sync.Mutex
	handles  = make(map[C.longlong]any)
	nextID   C.longlong = 1
)

func register(v any) C.longlong {
	handleMu.Lock()
	defer handleMu.Unlock()
	h := nextID
	nextID++
	handles[h] = v
	return h
}

func lookup[T any](h C.longlong) (T, bool) {
	handleMu.Lock()
	defer handleMu.Unlock()
	v, ok := handles[h].(T)
	return v, ok
}

// release removes and returns the entry so ownership transfers exactly
// once.
func release[T any](h C.longlong) (T, bool) {
	handleMu.Lock()
	defer handleMu.Unlock()
	v, ok := handles[h].(T)
	if ok {
		delete(handles, h)
	}
	return v, ok
}

func drop(h C.longlong) {
	handleMu.Lock()
	defer handleMu.Unlock()
	delete(handles, h)
}

// Per-thread error channel. Exported functions run on the C caller's
// thread, so pthread_self keys each caller's slot. A call updates only
// its own thread's slot: success clears it, failure overwrites it.
var (
	errMu    sync.Mutex
	lastErrs = make(map[uint64]*dberr.Error)
)

func threadID() uint64 {
	return uint64(C.sqlgate_thread_id())
}

// result records err in the calling thread's slot and returns its code.
func result(err error) C.int32_t {
	tid := threadID()
	errMu.Lock()
	defer errMu.Unlock()
	if err == nil {
		delete(lastErrs, tid)
		return C.int32_t(dberr.Success)
	}
	var e *dberr.Error
	if !errors.As(err, &e) {
		e = dberr.New(dberr.UnknownDriverError, err.Error())
	}
	lastErrs[tid] = e
	return C.int32_t(e.Code)
}

func badHandle() C.int32_t {
	return result(dberr.New(dberr.NullNotAllowed, "invalid or already freed handle"))
}

//export sqlgate_get_last_error_code
func sqlgate_get_last_error_code() C.int32_t {
	errMu.Lock()
	defer errMu.Unlock()
	if e, ok := lastErrs[threadID()]; ok {
		return C.int32_t(e.Code)
	}
	return C.int32_t(dberr.Success)
}

//export sqlgate_get_last_error_message
func sqlgate_get_last_error_message() *C.char {
	errMu.Lock()
	defer errMu.Unlock()
	if e, ok := lastErrs[threadID()]; ok {
		return C.CString(e.Message)
	}
	return nil
}

//export sqlgate_cstring_free
func sqlgate_cstring_free(s *C.char) {
	C.free(unsafe.Pointer(s))
}

// Connection settings.

//export connection_settings_new
func connection_settings_new() C.longlong {
	return register(db.NewSettings())
}

//export connection_settings_free
func connection_settings_free(h C.longlong) {
	drop(h)
}

//export connection_settings_set_database_type
func connection_settings_set_database_type(h C.longlong, dbType C.int32_t) C.int32_t {
	s, ok := lookup[*db.Settings](h)
	if !ok {
		return badHandle()
	}
	t := types.DatabaseType(dbType)
	if !t.Valid() {
		return result(dberr.Newf(dberr.BadPrimitiveEnumValue, "database type %d is not a known dialect", int32(dbType)))
	}
	s.DatabaseType = t
	return result(nil)
}

//export connection_settings_get_database_type
func connection_settings_get_database_type(h C.longlong) C.int32_t {
	s, ok := lookup[*db.Settings](h)
	if !ok {
		return -1
	}
	return C.int32_t(s.DatabaseType)
}

//export connection_settings_set_username
func connection_settings_set_username(h C.longlong, username *C.char) C.int32_t {
	s, ok := lookup[*db.Settings](h)
	if !ok {
		return badHandle()
	}
	s.Username = C.GoString(username)
	return result(nil)
}

//export connection_settings_get_username
func connection_settings_get_username(h C.longlong) *C.char {
	s, ok := lookup[*db.Settings](h)
	if !ok {
		return nil
	}
	return C.CString(s.Username)
}

//export connection_settings_set_password
func connection_settings_set_password(h C.longlong, password *C.char) C.int32_t {
	s, ok := lookup[*db.Settings](h)
	if !ok {
		return badHandle()
	}
	s.Password = C.GoString(password)
	return result(nil)
}

//export connection_settings_get_password
func connection_settings_get_password(h C.longlong) *C.char {
	s, ok := lookup[*db.Settings](h)
	if !ok {
		return nil
	}
	return C.CString(s.Password)
}

//export connection_settings_set_hostname
func connection_settings_set_hostname(h C.longlong, hostname *C.char) C.int32_t {
	s, ok := lookup[*db.Settings](h)
	if !ok {
		return badHandle()
	}
	s.Hostname = C.GoString(hostname)
	return result(nil)
}

//export connection_settings_get_hostname
func connection_settings_get_hostname(h C.longlong) *C.char {
	s, ok := lookup[*db.Settings](h)
	if !ok {
		return nil
	}
	return C.CString(s.Hostname)
}

//export connection_settings_set_port
func connection_settings_set_port(h C.longlong, port C.uint16_t) C.int32_t {
	s, ok := lookup[*db.Settings](h)
	if !ok {
		return badHandle()
	}
	s.Port = uint16(port)
	return result(nil)
}

//export connection_settings_get_port
func connection_settings_get_port(h C.longlong) C.uint16_t {
	s, ok := lookup[*db.Settings](h)
	if !ok {
		return 0
	}
	return C.uint16_t(s.Port)
}

//export connection_settings_set_database_name
func connection_settings_set_database_name(h C.longlong, name *C.char) C.int32_t {
	s, ok := lookup[*db.Settings](h)
	if !ok {
		return badHandle()
	}
	s.DatabaseName = C.GoString(name)
	return result(nil)
}

//export connection_settings_get_database_name
func connection_settings_get_database_name(h C.longlong) *C.char {
	s, ok := lookup[*db.Settings](h)
	if !ok {
		return nil
	}
	return C.CString(s.DatabaseName)
}

//export connection_settings_set_use_tls
func connection_settings_set_use_tls(h C.longlong, useTLS C.int32_t) C.int32_t {
	s, ok := lookup[*db.Settings](h)
	if !ok {
		return badHandle()
	}
	t := types.OptionalBool(useTLS)
	if !t.Valid() {
		return result(dberr.Newf(dberr.BadPrimitiveEnumValue, "tls setting %d is not a known state", int32(useTLS)))
	}
	s.UseTLS = t
	return result(nil)
}

//export connection_settings_get_use_tls
func connection_settings_get_use_tls(h C.longlong) C.int32_t {
	s, ok := lookup[*db.Settings](h)
	if !ok {
		return C.int32_t(types.OptionalNone)
	}
	return C.int32_t(s.UseTLS)
}

// Connection lifecycle.

//export connection_new
func connection_new(settingsHandle C.longlong) C.longlong {
	s, ok := release[*db.Settings](settingsHandle)
	if !ok {
		badHandle()
		return 0
	}
	return register(db.NewConnection(s))
}

//export connection_free
func connection_free(h C.longlong) {
	if c, ok := release[*db.Connection](h); ok {
		c.Disconnect()
	}
}

//export connection_is_connected
func connection_is_connected(h C.longlong) C.int32_t {
	c, ok := lookup[*db.Connection](h)
	if ok && c.IsConnected() {
		return 1
	}
	return 0
}

//export connection_connect
func connection_connect(h C.longlong) C.int32_t {
	c, ok := lookup[*db.Connection](h)
	if !ok {
		return badHandle()
	}
	return result(c.Connect())
}

//export connection_disconnect
func connection_disconnect(h C.longlong) C.int32_t {
	c, ok := lookup[*db.Connection](h)
	if !ok {
		return badHandle()
	}
	return result(c.Disconnect())
}

//export connection_reconnect
func connection_reconnect(h C.longlong) C.int32_t {
	c, ok := lookup[*db.Connection](h)
	if !ok {
		return badHandle()
	}
	return result(c.Reconnect())
}

// connection_get_settings hands back a non-owning view of the
// connection's live settings: edits through it reach the connection
// and take effect on the next connect. Freeing the view drops only its
// registry entry, never the connection's settings.
//
//export connection_get_settings
func connection_get_settings(h C.longlong) C.longlong {
	c, ok := lookup[*db.Connection](h)
	if !ok {
		badHandle()
		return 0
	}
	return register(c.Settings())
}

//export connection_executor
func connection_executor(h C.longlong, out *C.longlong) C.int32_t {
	c, ok := lookup[*db.Connection](h)
	if !ok {
		return badHandle()
	}
	ex, err := c.Executor()
	if err != nil {
		return result(err)
	}
	*out = register(ex)
	return result(nil)
}

//export connection_execute_query
func connection_execute_query(h C.longlong, query *C.char, argsHandle C.longlong, outAffected *C.uint64_t) C.int32_t {
	c, ok := lookup[*db.Connection](h)
	if !ok {
		return badHandle()
	}
	affected, err := c.ExecuteQuery(C.GoString(query), takeArgs(argsHandle))
	if err != nil {
		return result(err)
	}
	if outAffected != nil {
		*outAffected = C.uint64_t(affected)
	}
	return result(nil)
}

//export connection_fetch_query
func connection_fetch_query(h C.longlong, query *C.char, argsHandle C.longlong, outCursor *C.longlong) C.int32_t {
	c, ok := lookup[*db.Connection](h)
	if !ok {
		return badHandle()
	}
	cursor, err := c.FetchQuery(C.GoString(query), takeArgs(argsHandle))
	if err != nil {
		return result(err)
	}
	*outCursor = register(cursor)
	return result(nil)
}

// takeArgs consumes an argument vector handle at dispatch time. A zero
// handle binds nothing; the handle is gone afterward either way, so a
// caller cannot reuse a consumed vector.
func takeArgs(argsHandle C.longlong) *db.PlaceholderArgumentVector {
	if argsHandle == 0 {
		return nil
	}
	args, _ := release[*db.PlaceholderArgumentVector](argsHandle)
	return args
}

// Executor.

//export executor_free
func executor_free(h C.longlong) {
	drop(h)
}

//export executor_execute
func executor_execute(h C.longlong, query *C.char, argsHandle C.longlong, outAffected *C.uint64_t) C.int32_t {
	ex, ok := lookup[*db.Executor](h)
	if !ok {
		return badHandle()
	}
	affected, err := ex.Execute(C.GoString(query), takeArgs(argsHandle))
	if err != nil {
		return result(err)
	}
	if outAffected != nil {
		*outAffected = C.uint64_t(affected)
	}
	return result(nil)
}

//export executor_fetch_one
func executor_fetch_one(h C.longlong, query *C.char, argsHandle C.longlong, outRow *C.longlong) C.int32_t {
	ex, ok := lookup[*db.Executor](h)
	if !ok {
		return badHandle()
	}
	row, err := ex.FetchOne(C.GoString(query), takeArgs(argsHandle))
	if err != nil {
		return result(err)
	}
	*outRow = register(row)
	return result(nil)
}

//export executor_fetch_all
func executor_fetch_all(h C.longlong, query *C.char, argsHandle C.longlong, outVector *C.longlong) C.int32_t {
	ex, ok := lookup[*db.Executor](h)
	if !ok {
		return badHandle()
	}
	vector, err := ex.FetchAll(C.GoString(query), takeArgs(argsHandle))
	if err != nil {
		return result(err)
	}
	*outVector = register(vector)
	return result(nil)
}

//export executor_cursor
func executor_cursor(h C.longlong, query *C.char, argsHandle C.longlong, outCursor *C.longlong) C.int32_t {
	ex, ok := lookup[*db.Executor](h)
	if !ok {
		return badHandle()
	}
	cursor, err := ex.Cursor(C.GoString(query), takeArgs(argsHandle))
	if err != nil {
		return result(err)
	}
	*outCursor = register(cursor)
	return result(nil)
}

// Cursor.

//export cursor_free
func cursor_free(h C.longlong) {
	if cursor, ok := release[*db.Cursor](h); ok {
		cursor.Close()
	}
}

//export cursor_next
func cursor_next(h C.longlong, outRow *C.longlong) C.int32_t {
	cursor, ok := lookup[*db.Cursor](h)
	if !ok {
		return badHandle()
	}
	row, err := cursor.Next()
	if err != nil {
		return result(err)
	}
	*outRow = register(row)
	return result(nil)
}

//export cursor_rest
func cursor_rest(h C.longlong, outVector *C.longlong) C.int32_t {
	cursor, ok := lookup[*db.Cursor](h)
	if !ok {
		return badHandle()
	}
	vector, err := cursor.Rest()
	if err != nil {
		return result(err)
	}
	*outVector = register(vector)
	return result(nil)
}

// Table rows and columns.

//export table_row_free
func table_row_free(h C.longlong) {
	drop(h)
}

//export table_row_is_empty
func table_row_is_empty(h C.longlong) C.int32_t {
	row, ok := lookup[*db.TableRow](h)
	if !ok || row.IsEmpty() {
		return 1
	}
	return 0
}

//export table_row_column_count
func table_row_column_count(h C.longlong) C.size_t {
	row, ok := lookup[*db.TableRow](h)
	if !ok {
		return 0
	}
	return C.size_t(row.ColumnCount())
}

// table_row_columns hands back a malloc'd array of column handles; the
// caller walks it with table_row_columns_advance and returns it with
// table_row_columns_free.
//
//export table_row_columns
func table_row_columns(h C.longlong, outCount *C.size_t) *C.longlong {
	row, ok := lookup[*db.TableRow](h)
	if !ok {
		badHandle()
		return nil
	}
	columns := row.Columns()
	if outCount != nil {
		*outCount = C.size_t(len(columns))
	}
	if len(columns) == 0 {
		return nil
	}
	arr := (*C.longlong)(C.malloc(C.size_t(len(columns)) * C.size_t(unsafe.Sizeof(C.longlong(0)))))
	slice := unsafe.Slice(arr, len(columns))
	for i := range columns {
		col := columns[i]
		slice[i] = register(&col)
	}
	return arr
}

//export table_row_columns_advance
func table_row_columns_advance(arr *C.longlong, index C.size_t, count C.size_t) C.longlong {
	if arr == nil || index >= count {
		return 0
	}
	return unsafe.Slice(arr, count)[index]
}

//export table_row_columns_free
func table_row_columns_free(arr *C.longlong, count C.size_t) {
	if arr == nil {
		return
	}
	for _, h := range unsafe.Slice(arr, count) {
		drop(h)
	}
	C.free(unsafe.Pointer(arr))
}

//export table_row_get_column_with_name
func table_row_get_column_with_name(h C.longlong, name *C.char, outColumn *C.longlong) C.int32_t {
	row, ok := lookup[*db.TableRow](h)
	if !ok {
		return badHandle()
	}
	col, err := row.ColumnWithName(C.GoString(name))
	if err != nil {
		return result(err)
	}
	*outColumn = register(&col)
	return result(nil)
}

//export table_row_get_column_with_ordinal
func table_row_get_column_with_ordinal(h C.longlong, ordinal C.size_t, outColumn *C.longlong) C.int32_t {
	row, ok := lookup[*db.TableRow](h)
	if !ok {
		return badHandle()
	}
	col, err := row.ColumnWithOrdinal(int(ordinal))
	if err != nil {
		return result(err)
	}
	*outColumn = register(&col)
	return result(nil)
}

//export table_row_decode_to_buffer
func table_row_decode_to_buffer(h C.longlong, columnHandle C.longlong, buffer unsafe.Pointer, bufferSize C.size_t, outSize *C.size_t, outType *C.int32_t, outIsNull *C.int32_t) C.int32_t {
	row, ok := lookup[*db.TableRow](h)
	if !ok {
		return badHandle()
	}
	col, ok := lookup[*db.TableColumnRef](columnHandle)
	if !ok {
		return badHandle()
	}
	var buf []byte
	if buffer != nil && bufferSize > 0 {
		buf = unsafe.Slice((*byte)(buffer), bufferSize)
	}
	size, tag, isNull, err := row.DecodeToBuffer(*col, buf)
	if outSize != nil {
		*outSize = C.size_t(size)
	}
	if err != nil {
		return result(err)
	}
	if outType != nil {
		*outType = C.int32_t(tag)
	}
	if outIsNull != nil {
		if isNull {
			*outIsNull = 1
		} else {
			*outIsNull = 0
		}
	}
	return result(nil)
}

//export table_row_decode_to_allocation
func table_row_decode_to_allocation(h C.longlong, columnHandle C.longlong, valueHandle C.longlong) C.int32_t {
	row, ok := lookup[*db.TableRow](h)
	if !ok {
		return badHandle()
	}
	col, ok := lookup[*db.TableColumnRef](columnHandle)
	if !ok {
		return badHandle()
	}
	value, ok := lookup[*allocatedValue](valueHandle)
	if !ok {
		return badHandle()
	}
	decoded, err := row.DecodeToAllocation(*col)
	if err != nil {
		return result(err)
	}
	value.reset()
	if n := decoded.Size(); n > 0 {
		value.data = C.CBytes(decoded.Data())
		value.size = C.size_t(n)
	}
	value.tag = decoded.Type()
	value.null = decoded.IsNull()
	return result(nil)
}

// Column references.

//export table_column_ref_free
func table_column_ref_free(h C.longlong) {
	drop(h)
}

//export table_column_ref_ordinal
func table_column_ref_ordinal(h C.longlong) C.size_t {
	col, ok := lookup[*db.TableColumnRef](h)
	if !ok {
		return 0
	}
	return C.size_t(col.Ordinal())
}

//export table_column_ref_name
func table_column_ref_name(h C.longlong) *C.char {
	col, ok := lookup[*db.TableColumnRef](h)
	if !ok {
		return nil
	}
	return C.CString(col.Name())
}

//export table_column_ref_type
func table_column_ref_type(h C.longlong) C.int32_t {
	col, ok := lookup[*db.TableColumnRef](h)
	if !ok {
		return C.int32_t(types.Unknown)
	}
	return C.int32_t(col.Type())
}

// Row vectors.

//export table_row_vector_free
func table_row_vector_free(h C.longlong) {
	drop(h)
}

//export table_row_vector_size
func table_row_vector_size(h C.longlong) C.size_t {
	vector, ok := lookup[*db.TableRowVector](h)
	if !ok {
		return 0
	}
	return C.size_t(vector.Size())
}

//export table_row_vector_get
func table_row_vector_get(h C.longlong, index C.size_t, outRow *C.longlong) C.int32_t {
	vector, ok := lookup[*db.TableRowVector](h)
	if !ok {
		return badHandle()
	}
	row, err := vector.Get(int(index))
	if err != nil {
		return result(err)
	}
	*outRow = register(row)
	return result(nil)
}

// Placeholder arguments.

//export placeholder_argument_vector_new
func placeholder_argument_vector_new() C.longlong {
	return register(db.NewPlaceholderArgumentVector())
}

//export placeholder_argument_vector_free
func placeholder_argument_vector_free(h C.longlong) {
	drop(h)
}

// placeholder_argument_vector_add appends one argument and, through
// out, hands back a handle to the stored entry so the caller can
// adjust it in place before dispatch. The entry handle is freed with
// placeholder_argument_free; consuming the vector does not invalidate
// it, only dispatch ends the entry's usefulness.
//
//export placeholder_argument_vector_add
func placeholder_argument_vector_add(h C.longlong, tag C.int32_t, data unsafe.Pointer, size C.size_t, out *C.longlong) C.int32_t {
	vector, ok := lookup[*db.PlaceholderArgumentVector](h)
	if !ok {
		return badHandle()
	}
	value, err := nativeFromExternal(types.NativeTypeTag(tag), data, size)
	if err != nil {
		return result(err)
	}
	entry := vector.Add(value)
	if out != nil {
		*out = register(entry)
	}
	return result(nil)
}

//export placeholder_argument_set
func placeholder_argument_set(h C.longlong, tag C.int32_t, data unsafe.Pointer, size C.size_t) C.int32_t {
	entry, ok := lookup[*types.NativeType](h)
	if !ok {
		return badHandle()
	}
	value, err := nativeFromExternal(types.NativeTypeTag(tag), data, size)
	if err != nil {
		return result(err)
	}
	*entry = value
	return result(nil)
}

//export placeholder_argument_free
func placeholder_argument_free(h C.longlong) {
	drop(h)
}

// nativeFromExternal reads a caller-owned payload into a native value,
// copying so the caller may free its buffer immediately after the call.
func nativeFromExternal(tag types.NativeTypeTag, data unsafe.Pointer, size C.size_t) (types.NativeType, error) {
	if tag == types.Null {
		return types.NullValue(), nil
	}
	if !tag.Valid() || tag == types.NoValue {
		return types.None(), dberr.Newf(dberr.InvalidNativeType, "native type %d cannot be bound", int32(tag))
	}
	if width := tag.Width(); width > 0 && int(size) < width {
		return types.None(), dberr.Newf(dberr.BufferNotEnough, "payload of %d bytes is short of the %d bytes %s needs", int(size), width, tag)
	}
	if data == nil && size > 0 {
		return types.None(), dberr.New(dberr.NullNotAllowed, "payload pointer is null")
	}
	var raw []byte
	if size > 0 {
		raw = unsafe.Slice((*byte)(data), size)
	}

	switch tag {
	case types.Bool:
		return types.BoolValue(raw[0] != 0), nil
	case types.Int8:
		return types.Int8Value(int8(raw[0])), nil
	case types.UInt8:
		return types.UInt8Value(raw[0]), nil
	case types.Int16:
		return types.Int16Value(int16(nativeUint16(raw))), nil
	case types.UInt16:
		return types.UInt16Value(nativeUint16(raw)), nil
	case types.Int32:
		return types.Int32Value(int32(nativeUint32(raw))), nil
	case types.UInt32:
		return types.UInt32Value(nativeUint32(raw)), nil
	case types.Int64:
		return types.Int64Value(int64(nativeUint64(raw))), nil
	case types.UInt64:
		return types.UInt64Value(nativeUint64(raw)), nil
	case types.Float32:
		return types.Float32Value(nativeFloat32(raw)), nil
	case types.Float64:
		return types.Float64Value(nativeFloat64(raw)), nil
	case types.String:
		if !utf8.Valid(raw) {
			return types.None(), dberr.New(dberr.InvalidUtf8String, "text payload is not valid utf-8")
		}
		return types.StringValue(string(raw)), nil
	case types.Bytes:
		copied := make([]byte, len(raw))
		copy(copied, raw)
		return types.BytesValue(copied), nil
	default:
		return types.None(), dberr.Newf(dberr.InvalidNativeType, "native type %d cannot be bound", int32(tag))
	}
}

// Allocated decoded values. The payload lives in C memory so the data
// pointer stays valid until the value is freed or decoded into again.
type allocatedValue struct {
	data unsafe.Pointer
	size C.size_t
	tag  types.NativeTypeTag
	null bool
}

func (v *allocatedValue) reset() {
	if v.data != nil {
		C.free(v.data)
	}
	v.data = nil
	v.size = 0
	v.tag = types.NoValue
	v.null = false
}

//export allocated_decoded_value_new
func allocated_decoded_value_new() C.longlong {
	return register(&allocatedValue{tag: types.NoValue})
}

//export allocated_decoded_value_free
func allocated_decoded_value_free(h C.longlong) {
	if value, ok := release[*allocatedValue](h); ok {
		value.reset()
	}
}

//export allocated_decoded_value_data
func allocated_decoded_value_data(h C.longlong) unsafe.Pointer {
	value, ok := lookup[*allocatedValue](h)
	if !ok {
		return nil
	}
	return value.data
}

//export allocated_decoded_value_size
func allocated_decoded_value_size(h C.longlong) C.size_t {
	value, ok := lookup[*allocatedValue](h)
	if !ok {
		return 0
	}
	return value.size
}

//export allocated_decoded_value_type
func allocated_decoded_value_type(h C.longlong) C.int32_t {
	value, ok := lookup[*allocatedValue](h)
	if !ok {
		return C.int32_t(types.NoValue)
	}
	return C.int32_t(value.tag)
}

//export allocated_decoded_value_is_null_value
func allocated_decoded_value_is_null_value(h C.longlong) C.int32_t {
	value, ok := lookup[*allocatedValue](h)
	if ok && value.null {
		return 1
	}
	return 0
}

func main() {}
