package javasrc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractInterfaceAnnotations(t *testing.T) {
	tests := []struct {
		name    string
		content string
		iface   string
		want    []string
	}{
		{
			name:    "annotation on its own line",
			content: "@Remote\npublic interface FooRemote {}",
			iface:   "FooRemote",
			want:    []string{"@Remote"},
		},
		{
			name:    "several annotations with arguments",
			content: "import x;\n\n@Local\n@WebService(name = \"orders\", targetNamespace = \"urn:(x)\")\npublic abstract interface Orders {}",
			iface:   "Orders",
			want:    []string{"@Local", `@WebService(name = "orders", targetNamespace = "urn:(x)")`},
		},
		{
			name:    "qualified annotation",
			content: "@javax.ejb.Remote public interface Billing {}",
			iface:   "Billing",
			want:    []string{"@javax.ejb.Remote"},
		},
		{
			name:    "annotation between modifiers",
			content: "public @Local sealed interface Ledger permits A {}",
			iface:   "Ledger",
			want:    []string{"@Local"},
		},
		{
			name:    "stops at preceding statement",
			content: "@Deprecated\nclass Other {}\npublic interface Plain {}",
			iface:   "Plain",
			want:    []string{},
		},
		{
			name:    "no declaration",
			content: "class Nothing {}",
			iface:   "Missing",
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractInterfaceAnnotations(tt.content, tt.iface))
		})
	}
}
