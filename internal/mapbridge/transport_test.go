package mapbridge

import (
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageStub = `
var window = {};
var consoleErrors = [];
var console = {
  error: function () { consoleErrors.push(Array.prototype.slice.call(arguments).join(' ')); }
};
`

func newPage(t *testing.T) *goja.Runtime {
	t.Helper()
	vm := goja.New()
	_, err := vm.RunString(pageStub)
	require.NoError(t, err)
	return vm
}

func evalString(t *testing.T, vm *goja.Runtime, expr string) string {
	t.Helper()
	v, err := vm.RunString(expr)
	require.NoError(t, err)
	return v.String()
}

func injectionFor(t *testing.T, msg Message) string {
	t.Helper()
	encoded, err := Encode(msg)
	require.NoError(t, err)
	return InjectionScript(encoded)
}

func TestInjectionScript_QueuesBeforeHandlerRegisters(t *testing.T) {
	vm := newPage(t)

	result, err := vm.RunString(injectionFor(t, Init{}))
	require.NoError(t, err)
	assert.True(t, result.ToBoolean())

	_, err = vm.RunString(injectionFor(t, HighlightStore{StoreID: "S1"}))
	require.NoError(t, err)

	assert.JSONEq(t,
		`[{"type":"init"},{"type":"highlightStore","storeId":"S1"}]`,
		evalString(t, vm, `JSON.stringify(window.pendingHostMessages)`),
	)
}

func TestInjectionScript_CallsRegisteredHandler(t *testing.T) {
	vm := newPage(t)
	_, err := vm.RunString(`
window.received = [];
window.handleHostMessage = function (message) { window.received.push(message); };
`)
	require.NoError(t, err)

	_, err = vm.RunString(injectionFor(t, AddStores{Stores: []StoreMarker{{ID: "S1", Name: "강남점 \"본점\"", Latitude: 37.5, Longitude: 127}}}))
	require.NoError(t, err)

	assert.JSONEq(t,
		`[{"type":"addStores","stores":[{"id":"S1","name":"강남점 \"본점\"","latitude":37.5,"longitude":127}]}]`,
		evalString(t, vm, `JSON.stringify(window.received)`),
	)
	assert.Equal(t, "undefined", evalString(t, vm, `typeof window.pendingHostMessages`))
}

func TestInjectionScript_SwallowsRendererErrors(t *testing.T) {
	vm := newPage(t)
	_, err := vm.RunString(`window.handleHostMessage = function () { throw new Error('boom'); };`)
	require.NoError(t, err)

	_, err = vm.RunString(injectionFor(t, ClearAllMarkers{}))
	require.NoError(t, err)

	assert.Equal(t, "1", evalString(t, vm, `String(consoleErrors.length)`))
	assert.Contains(t, evalString(t, vm, `consoleErrors[0]`), "boom")
}

func TestInjectionScript_EscapesScriptBreakingText(t *testing.T) {
	vm := newPage(t)

	_, err := vm.RunString(injectionFor(t, HighlightStore{StoreID: "</script><script>alert(1)</script>\u2028"}))
	require.NoError(t, err)

	assert.Equal(t,
		"</script><script>alert(1)</script>\u2028",
		evalString(t, vm, `window.pendingHostMessages[0].storeId`),
	)
}
