package tenants_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-org-service/tenants"
)

func TestNamespaceFor(t *testing.T) {
	tests := []struct {
		name     string
		orgName  string
		expected string
	}{
		{name: "simple", orgName: "acme", expected: "tenant_acme"},
		{name: "mixed case", orgName: "Acme", expected: "tenant_acme"},
		{name: "single space", orgName: "Acme Inc", expected: "tenant_acme_inc"},
		{name: "whitespace run", orgName: "Acme   Holdings\tLtd", expected: "tenant_acme_holdings_ltd"},
		{name: "leading and trailing space", orgName: "  Acme Inc  ", expected: "tenant_acme_inc"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, tenants.NamespaceFor(tc.orgName))
		})
	}
}

func TestNamespaceForIsDeterministic(t *testing.T) {
	require.Equal(t, tenants.NamespaceFor("Acme Inc"), tenants.NamespaceFor("Acme Inc"))
}
