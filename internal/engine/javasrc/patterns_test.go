package javasrc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderService = `package com.acme.orders;

import com.acme.dto.OrderDTO;
import com.acme.model.*;
import static com.acme.util.Checks.notNull;
import com.acme.dto.OrderDTO;

@Remote
public interface OrderService {
    OrderDTO find(Long id) throws NotFoundException;
    List<OrderDTO> findAll();
    void cancel(OrderDTO order, String reason);
    int[] counts();
}
`

func TestExtractPackage(t *testing.T) {
	assert.Equal(t, "com.acme.orders", ExtractPackage(orderService))
	assert.Equal(t, "", ExtractPackage("public class Default {}"))
	assert.Equal(t, "a.b", ExtractPackage("package a.b ;\npackage c.d;"))
}

func TestExtractTypeDeclarations(t *testing.T) {
	src := `package p;
public abstract class Base {}
final class Leaf extends Base {
    enum Color { RED }
    interface Inner {}
}
public interface Api {}
`
	decls := ExtractTypeDeclarations(src)
	require.Len(t, decls, 5)
	assert.Equal(t, TypeDeclaration{Kind: "class", Name: "Base"}, decls[0])
	assert.Equal(t, TypeDeclaration{Kind: "class", Name: "Leaf"}, decls[1])
	assert.Equal(t, TypeDeclaration{Kind: "enum", Name: "Color"}, decls[2])
	assert.Equal(t, TypeDeclaration{Kind: "interface", Name: "Inner"}, decls[3])
	assert.Equal(t, TypeDeclaration{Kind: "interface", Name: "Api"}, decls[4])
}

func TestExtractImports(t *testing.T) {
	assert.Equal(t, []string{
		"com.acme.dto.OrderDTO",
		"com.acme.model.*",
		"com.acme.util.Checks.notNull",
	}, ExtractImports(orderService))
	assert.Empty(t, ExtractImports("class A {}"))
}

func TestHasInterfaceDeclaration(t *testing.T) {
	assert.True(t, HasInterfaceDeclaration(orderService, "OrderService"))
	assert.False(t, HasInterfaceDeclaration(orderService, "Order"))
	assert.False(t, HasInterfaceDeclaration("class OrderService {}", "OrderService"))
}

func TestImplementsInterface(t *testing.T) {
	bean := "public class OrderBean extends Base implements Serializable, OrderService {\n}"
	assert.True(t, ImplementsInterface(bean, "OrderService"))
	assert.True(t, ImplementsInterface(bean, "Serializable"))
	assert.False(t, ImplementsInterface(bean, "Order"))
	assert.False(t, ImplementsInterface("class X implements Runnable { OrderService s; }", "OrderService"))
	assert.False(t, ImplementsInterface(bean, ""))
}

func TestStripGenericsAndSimpleName(t *testing.T) {
	assert.Equal(t, "ListOrderDTO", StripGenerics("List<OrderDTO>"))
	assert.Equal(t, "OrderDTO", SimpleName("com.acme.dto.OrderDTO"))
	assert.Equal(t, "OrderDTO", SimpleName("OrderDTO"))
	assert.Equal(t, "*", SimpleName("com.acme.model.*"))
}

func TestParameterTypes(t *testing.T) {
	assert.Equal(t, []string{"OrderDTO", "String"}, ParameterTypes("OrderDTO order, String reason"))
	assert.Equal(t, []string{"final"}, ParameterTypes("final OrderDTO order"))
	assert.Nil(t, ParameterTypes("  "))
	assert.Nil(t, ParameterTypes("Lonely"))
}

func TestDeclaresImplementation(t *testing.T) {
	src := "public class OrderBean implements OrderService {\n  static class Helper implements Runnable {}\n}"
	assert.True(t, DeclaresImplementation(src, "OrderBean", "OrderService"))
	assert.False(t, DeclaresImplementation(src, "Helper", "OrderService"))
	assert.True(t, DeclaresImplementation(src, "Helper", "Runnable"))
	assert.False(t, DeclaresImplementation(src, "", "Runnable"))
}
