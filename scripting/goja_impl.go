package scripting

import (
	"context"
	"errors"
	"fmt"

	"github.com/dop251/goja"
)

// GojaRules runs JavaScript categorization rules. The script must define a
// global function
//
//	categorize(merchant, amount)
//
// returning either null/undefined (no opinion) or an object with "label" and
// "category" string properties.
//
// A GojaRules instance wraps a single JavaScript runtime and must not be
// used from multiple goroutines concurrently.
type GojaRules struct {
	vm *goja.Runtime
	fn goja.Callable
}

// NewGojaRules compiles and loads a rules script.
func NewGojaRules(script string) (*GojaRules, error) {
	vm := goja.New()
	if _, err := vm.RunString(script); err != nil {
		return nil, fmt.Errorf("load rules script: %w", err)
	}
	fn, ok := goja.AssertFunction(vm.Get("categorize"))
	if !ok {
		return nil, errors.New("rules script must define categorize(merchant, amount)")
	}
	return &GojaRules{vm: vm, fn: fn}, nil
}

func (r *GojaRules) Categorize(ctx context.Context, merchant string, amount uint64) (Classification, bool, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return Classification{}, false, err
	}

	done := make(chan struct{})
	defer close(done)
	defer r.vm.ClearInterrupt()

	go func() {
		select {
		case <-ctx.Done():
			r.vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	val, err := r.fn(goja.Undefined(), r.vm.ToValue(merchant), r.vm.ToValue(amount))
	if err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			if cause, ok := interrupted.Value().(error); ok {
				return Classification{}, false, cause
			}
			return Classification{}, false, context.Canceled
		}
		return Classification{}, false, fmt.Errorf("categorize(%q, %d): %w", merchant, amount, err)
	}

	if val == nil || goja.IsNull(val) || goja.IsUndefined(val) {
		return Classification{}, false, nil
	}

	obj := val.ToObject(r.vm)
	c := Classification{
		Label:    stringProp(obj, "label"),
		Category: stringProp(obj, "category"),
	}
	if c.Label == "" {
		return Classification{}, false, errors.New("categorize result is missing a label")
	}
	return c, true, nil
}

func stringProp(obj *goja.Object, name string) string {
	v := obj.Get(name)
	if v == nil || goja.IsNull(v) || goja.IsUndefined(v) {
		return ""
	}
	return v.String()
}
