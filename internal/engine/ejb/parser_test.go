package ejb

import (
	"context"
	"path/filepath"
	"testing"

	"ejbctx/internal/core/errors"
	"ejbctx/internal/engine/javasrc"
	"ejbctx/internal/engine/scanner"
	"ejbctx/internal/shared/observability"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RemoteInterfaceLinkedByNaming(t *testing.T) {
	root := writeProject(t, map[string]string{
		"src/com/app/UserServiceRemote.java": "package com.app;\n\npublic interface UserServiceRemote {\n    String getUser(int id);\n}\n",
		"src/com/app/UserServiceBean.java":   "package com.app;\n\npublic class UserServiceBean implements UserServiceRemote {\n    public String getUser(int id) { return \"u\" + id; }\n}\n",
	})

	analysis, err := NewParser(root, Options{}).Parse(context.Background())
	require.NoError(t, err)
	require.Len(t, analysis.Interfaces, 1)

	record := analysis.Interfaces[0]
	assert.Equal(t, "com.app.UserServiceRemote", record.ID)
	assert.Equal(t, CategoryRemote, record.Category)
	assert.Equal(t, "UserServiceBean", record.BeanClass)
	assert.Equal(t, []javasrc.MethodSignature{{ReturnType: "String", Name: "getUser", Parameters: "int id"}}, record.Methods)
	assert.Equal(t, filepath.Join(root, "src/com/app/UserServiceRemote.java"), record.FilePath)
	assert.Equal(t, 2, analysis.Stats.JavaFiles)
	assert.Equal(t, 1, analysis.Stats.Links.ByNaming)
}

func TestParse_RelatedDTOsFromImportsAndSignatures(t *testing.T) {
	root := writeProject(t, map[string]string{
		"com/app/dao/PaymentDAO.java": `package com.app.dao;

import com.app.dto.PaymentDTO;

public interface PaymentDAO {
    PaymentDTO process(PaymentRequestDTO req);
}
`,
		"com/app/dto/PaymentDTO.java":        "package com.app.dto;\npublic class PaymentDTO {}",
		"com/app/dto/PaymentRequestDTO.java": "package com.app.dto;\npublic class PaymentRequestDTO {}",
	})

	analysis, err := NewParser(root, Options{}).Parse(context.Background())
	require.NoError(t, err)
	require.Len(t, analysis.Interfaces, 1)

	record := analysis.Interfaces[0]
	assert.Equal(t, CategoryBusiness, record.Category)
	assert.Contains(t, record.RelatedDTOs, "PaymentDTO")
	assert.Contains(t, record.RelatedDTOs, "PaymentRequestDTO")
	assert.Empty(t, record.RelatedEntities)
}

func filesScanned(t *testing.T) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, observability.FilesScannedTotal.Write(&m))
	return m.GetCounter().GetValue()
}

func TestParse_CountsScannedFilesOnce(t *testing.T) {
	root := writeProject(t, map[string]string{
		"src/com/app/UserServiceRemote.java": "package com.app;\n\npublic interface UserServiceRemote {\n    String getUser(int id);\n}\n",
		"src/com/app/UserServiceBean.java":   "package com.app;\n\npublic class UserServiceBean implements UserServiceRemote {\n    public String getUser(int id) { return \"u\" + id; }\n}\n",
	})

	before := filesScanned(t)
	_, err := NewParser(root, Options{}).Parse(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2.0, filesScanned(t)-before)

	before = filesScanned(t)
	_, err = scanner.Scan(root, scanner.Options{})
	require.NoError(t, err)
	assert.Equal(t, before, filesScanned(t))
}

func TestParse_NoJavaFiles(t *testing.T) {
	root := writeProject(t, map[string]string{"README.md": "nothing here"})

	analysis, err := NewParser(root, Options{}).Parse(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, analysis.Table.Len())
	assert.Empty(t, analysis.Interfaces)
	assert.NotNil(t, analysis.Interfaces)
}

func TestParse_ExcludedDirectoriesAreIgnored(t *testing.T) {
	root := writeProject(t, map[string]string{
		"src/OrderService.java":         "public interface OrderService {}",
		"target/gen/ShadowService.java": "public interface ShadowService {}",
	})

	analysis, err := NewParser(root, Options{Scanner: scanner.Options{ExcludeDirs: []string{"target"}}}).Parse(context.Background())
	require.NoError(t, err)
	require.Len(t, analysis.Interfaces, 1)
	assert.Equal(t, "OrderService", analysis.Interfaces[0].InterfaceName)
}

func TestParse_TreeSitterExtractor(t *testing.T) {
	root := writeProject(t, map[string]string{
		"Mixed.java": `@Local
public interface InventoryLocal {
    ItemDTO item(String sku);
}

class InventoryBean implements InventoryLocal {
    public ItemDTO item(String sku) { return lookup(sku); }
    private ItemDTO lookup(String sku) { return null; }
}
`,
	})

	analysis, err := NewParser(root, Options{Extractor: javasrc.NewTreeSitterExtractor()}).Parse(context.Background())
	require.NoError(t, err)
	require.Len(t, analysis.Interfaces, 1)
	record := analysis.Interfaces[0]
	assert.Equal(t, []javasrc.MethodSignature{{ReturnType: "ItemDTO", Name: "item", Parameters: "String sku"}}, record.Methods)
	assert.Equal(t, "InventoryBean", record.BeanClass)
	assert.Equal(t, CategoryLocal, record.Category)
}

func TestParse_MissingRoot(t *testing.T) {
	_, err := NewParser(filepath.Join(t.TempDir(), "missing"), Options{}).Parse(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeNotFound))
}

func TestParse_CanceledBetweenPhases(t *testing.T) {
	root := writeProject(t, map[string]string{"A.java": "interface AService {}"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewParser(root, Options{}).Parse(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeCanceled))
}
