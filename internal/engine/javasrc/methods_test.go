package javasrc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMethods(t *testing.T) {
	methods := ExtractMethods(orderService)
	require.Len(t, methods, 4)
	assert.Equal(t, MethodSignature{ReturnType: "OrderDTO", Name: "find", Parameters: "Long id"}, methods[0])
	assert.Equal(t, MethodSignature{ReturnType: "List<OrderDTO>", Name: "findAll", Parameters: ""}, methods[1])
	assert.Equal(t, MethodSignature{ReturnType: "void", Name: "cancel", Parameters: "OrderDTO order, String reason"}, methods[2])
	assert.Equal(t, MethodSignature{ReturnType: "int[]", Name: "counts", Parameters: ""}, methods[3])
}

func TestExtractMethods_SkipsStatements(t *testing.T) {
	src := `class Impl {
    public Result run(Input in) {
        if (in == null) {
            return build(in);
        }
        while (more()) {
            step();
        }
        synchronized (lock) {
        }
        return new Result();
    }
}`
	var names []string
	for _, m := range ExtractMethods(src) {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"run", "step"}, names)
}

func TestExtractMethods_MissingReturnTypeIsVoid(t *testing.T) {
	methods := ExtractMethods("foo(int a);")
	require.Len(t, methods, 1)
	assert.Equal(t, MethodSignature{ReturnType: "void", Name: "foo", Parameters: "int a"}, methods[0])
}

func TestRegexExtractorIgnoresInterfaceName(t *testing.T) {
	var e MethodExtractor = RegexExtractor{}
	assert.Equal(t, "regex", e.Name())
	assert.Equal(t, ExtractMethods(orderService), e.ExtractMethods(orderService, "Anything"))
}
