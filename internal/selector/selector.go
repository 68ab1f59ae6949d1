// Package selector runs user supplied Lua scripts that pick a release asset.
//
// A script defines a global function
//
//	function select_asset(assets)
//	  for _, name in ipairs(assets) do
//	    if name:find(platform.os) and name:find("musl") then
//	      return name
//	    end
//	  end
//	end
//
// It receives the asset names in release order, also available as the
// global "assets", and returns one of them or nil to decline. The read-only
// global "platform" describes the host. Scripts
// run sandboxed, without filesystem, process or module access.
package selector

import (
	"context"
	"fmt"
	"os"
	"slices"

	lua "github.com/yuin/gopher-lua"

	"github.com/ZebulonRouseFrantzich/relfetch/internal/platform"
)

// FunctionName is the global function a selection script must define.
const FunctionName = "select_asset"

// Select runs script and returns the asset name its select_asset function
// chose. ok is false when the function returns nil or false. Any other
// result that is not one of assets is an error.
func Select(ctx context.Context, script string, info *platform.Info, assets []string) (string, bool, error) {
	L := newSandboxedVM()
	defer L.Close()

	L.SetContext(ctx)
	platform.InjectPlatformTable(L, info)

	names := L.NewTable()
	for _, name := range assets {
		names.Append(lua.LString(name))
	}
	L.SetGlobal("assets", names)

	if err := L.DoString(script); err != nil {
		return "", false, fmt.Errorf("load selection script: %w", err)
	}

	fn, ok := L.GetGlobal(FunctionName).(*lua.LFunction)
	if !ok {
		return "", false, fmt.Errorf("selection script does not define function %s", FunctionName)
	}

	if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, names); err != nil {
		return "", false, fmt.Errorf("run %s: %w", FunctionName, err)
	}
	ret := L.Get(-1)
	L.Pop(1)

	switch v := ret.(type) {
	case *lua.LNilType:
		return "", false, nil
	case lua.LBool:
		if !bool(v) {
			return "", false, nil
		}
	case lua.LString:
		name := string(v)
		if !slices.Contains(assets, name) {
			return "", false, fmt.Errorf("%s returned %q, which is not an asset of the release", FunctionName, name)
		}
		return name, true, nil
	}

	return "", false, fmt.Errorf("%s must return an asset name or nil, got %s", FunctionName, ret.Type())
}

// SelectFile is Select with the script read from path.
func SelectFile(ctx context.Context, path string, info *platform.Info, assets []string) (string, bool, error) {
	script, err := os.ReadFile(path)
	if err != nil {
		return "", false, fmt.Errorf("read selection script: %w", err)
	}
	return Select(ctx, string(script), info, assets)
}
