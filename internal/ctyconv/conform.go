package ctyconv

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Conform converts v to the cty type want and back to a Go value. A
// cty.NilType or cty.DynamicPseudoType want leaves v unchanged.
func Conform(v any, want cty.Type) (any, error) {
	if want == cty.NilType || want.Equals(cty.DynamicPseudoType) {
		return v, nil
	}
	cv, err := FromGo(v)
	if err != nil {
		return nil, err
	}
	out, err := convert.Convert(cv, want)
	if err != nil {
		return nil, fmt.Errorf("cannot use %s as %s: %w", cv.Type().FriendlyName(), want.FriendlyName(), err)
	}
	return ToGo(out)
}
