package bridge

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// AssetFilter narrows SearchAssets
type AssetFilter struct {
	ClassNames   []string `json:"ClassNames,omitempty"`
	PackagePaths []string `json:"PackagePaths,omitempty"`
	Recursive    bool     `json:"RecursivePaths"`
}

const infoRoute = "/remote/info"

// Info returns the Remote Control route listing, used as a liveness probe
func (b *Bridge) Info(ctx context.Context, opts ...Option) ([]byte, error) {
	return b.request(ctx, http.MethodGet, infoRoute, nil, b.collect("info", opts))
}

// CallFunction invokes a UFunction on an object. The call is recorded as an
// editor transaction so it can be undone.
func (b *Bridge) CallFunction(ctx context.Context, objectPath, function string, params map[string]any, opts ...Option) ([]byte, error) {
	if err := requireObjectPath(objectPath); err != nil {
		return nil, err
	}
	if function == "" {
		return nil, fmt.Errorf("function name is required")
	}
	return b.call(ctx, objectPath, function, params, true, b.collect("call "+function, opts))
}

func (b *Bridge) call(ctx context.Context, objectPath, function string, params map[string]any, transaction bool, o callOptions) ([]byte, error) {
	if params == nil {
		params = map[string]any{}
	}
	body := map[string]any{
		"objectPath":          objectPath,
		"functionName":        function,
		"parameters":          params,
		"generateTransaction": transaction,
	}
	return b.request(ctx, http.MethodPut, "/remote/object/call", body, o)
}

// GetProperty reads a property value
func (b *Bridge) GetProperty(ctx context.Context, objectPath, property string, opts ...Option) ([]byte, error) {
	if err := requireObjectPath(objectPath); err != nil {
		return nil, err
	}
	body := map[string]any{
		"objectPath": objectPath,
		"access":     "READ_ACCESS",
	}
	if property != "" {
		body["propertyName"] = property
	}
	return b.request(ctx, http.MethodPut, "/remote/object/property", body, b.collect("get "+property, opts))
}

// SetProperty writes a property value inside an editor transaction
func (b *Bridge) SetProperty(ctx context.Context, objectPath, property string, value any, opts ...Option) ([]byte, error) {
	if err := requireObjectPath(objectPath); err != nil {
		return nil, err
	}
	if property == "" {
		return nil, fmt.Errorf("property name is required")
	}
	body := map[string]any{
		"objectPath":    objectPath,
		"propertyName":  property,
		"propertyValue": map[string]any{property: value},
		"access":        "WRITE_TRANSACTION_ACCESS",
	}
	return b.request(ctx, http.MethodPut, "/remote/object/property", body, b.collect("set "+property, opts))
}

// Describe returns the functions and properties exposed by an object
func (b *Bridge) Describe(ctx context.Context, objectPath string, opts ...Option) ([]byte, error) {
	if err := requireObjectPath(objectPath); err != nil {
		return nil, err
	}
	body := map[string]any{"objectPath": objectPath}
	return b.request(ctx, http.MethodPut, "/remote/object/describe", body, b.collect("describe", opts))
}

// ListPresets returns the Remote Control presets known to the editor
func (b *Bridge) ListPresets(ctx context.Context, opts ...Option) ([]byte, error) {
	return b.request(ctx, http.MethodGet, "/remote/presets", nil, b.collect("list presets", opts))
}

// GetPreset returns one preset with its exposed properties and functions
func (b *Bridge) GetPreset(ctx context.Context, name string, opts ...Option) ([]byte, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("preset name is required")
	}
	route := "/remote/preset/" + url.PathEscape(name)
	return b.request(ctx, http.MethodGet, route, nil, b.collect("get preset", opts))
}

// SearchAssets queries the asset registry
func (b *Bridge) SearchAssets(ctx context.Context, query string, filter AssetFilter, opts ...Option) ([]byte, error) {
	body := map[string]any{
		"Query":  query,
		"Filter": filter,
	}
	return b.request(ctx, http.MethodPut, "/remote/search/assets", body, b.collect("search assets", opts))
}

func requireObjectPath(objectPath string) error {
	if strings.TrimSpace(objectPath) == "" {
		return fmt.Errorf("object path is required")
	}
	return nil
}
