package ejb

import (
	"testing"

	"ejbctx/internal/engine/javasrc"
	"ejbctx/internal/engine/symbols"

	"github.com/stretchr/testify/assert"
)

func TestResolveRelated(t *testing.T) {
	record := &InterfaceRecord{
		FilePath: "/p/PaymentDAO.java",
		Methods: []javasrc.MethodSignature{
			{ReturnType: "PaymentDTO", Name: "process", Parameters: "PaymentRequestDTO req"},
			{ReturnType: "java.util.List<com.app.model.PaymentEntity>", Name: "history", Parameters: "CustomerVO customer, int page"},
			{ReturnType: "void", Name: "purge", Parameters: ""},
			{ReturnType: "AuditData[]", Name: "audit", Parameters: ""},
		},
	}
	imports := symbols.ImportMap{
		"/p/PaymentDAO.java": {"com.app.dto.PaymentDTO", "com.app.model.*", "com.app.jpa.LedgerTable", "java.util.List"},
	}

	ResolveRelated(record, imports)

	assert.Equal(t, []string{"AuditData", "CustomerVO", "PaymentDTO", "PaymentRequestDTO"}, record.RelatedDTOs)
	assert.Equal(t, []string{"LedgerTable", "PaymentEntity"}, record.RelatedEntities)
}

func TestResolveRelated_IdempotentAndOrderIndependent(t *testing.T) {
	methods := []javasrc.MethodSignature{{ReturnType: "OrderDTO", Name: "get", Parameters: "OrderKeyValue key"}}
	a := &InterfaceRecord{FilePath: "/p/A.java", Methods: methods}
	b := &InterfaceRecord{FilePath: "/p/A.java", Methods: methods}

	forward := symbols.ImportMap{"/p/A.java": {"x.OrderDTO", "x.OrderEntity", "x.UserModel"}}
	backward := symbols.ImportMap{"/p/A.java": {"x.UserModel", "x.OrderEntity", "x.OrderDTO"}}

	ResolveRelated(a, forward)
	first := append([]string(nil), a.RelatedDTOs...)
	ResolveRelated(a, forward)
	ResolveRelated(b, backward)

	assert.Equal(t, first, a.RelatedDTOs)
	assert.Equal(t, a.RelatedDTOs, b.RelatedDTOs)
	assert.Equal(t, a.RelatedEntities, b.RelatedEntities)
	assert.Equal(t, []string{"OrderDTO", "OrderKeyValue", "UserModel"}, a.RelatedDTOs)
}

func TestResolveRelated_NameInBothSets(t *testing.T) {
	record := &InterfaceRecord{
		FilePath: "/p/A.java",
		Methods:  []javasrc.MethodSignature{{ReturnType: "EntityDataDTO", Name: "load", Parameters: ""}},
	}
	ResolveRelated(record, symbols.ImportMap{})
	assert.Equal(t, []string{"EntityDataDTO"}, record.RelatedDTOs)
	assert.Equal(t, []string{"EntityDataDTO"}, record.RelatedEntities)
}

func TestResolveRelated_ImportDTOFirst(t *testing.T) {
	record := &InterfaceRecord{FilePath: "/p/A.java"}
	ResolveRelated(record, symbols.ImportMap{"/p/A.java": {"x.OrderDataEntity", "x.CustomerEntity"}})
	assert.Equal(t, []string{"OrderDataEntity"}, record.RelatedDTOs)
	assert.Equal(t, []string{"CustomerEntity"}, record.RelatedEntities)
}

func TestRelatedCandidatesSkipsWildcards(t *testing.T) {
	got := RelatedCandidates([]string{"com.app.dto.*"}, nil)
	assert.Empty(t, got)
}
