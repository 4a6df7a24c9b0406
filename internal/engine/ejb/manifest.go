package ejb

import (
	"bytes"
	"ejbctx/internal/core/errors"
	"ejbctx/internal/engine/javasrc"
	"ejbctx/internal/shared/util"
	"encoding/json"
	"log/slog"
)

// Manifest is the JSON summary of one analysis run.
type Manifest struct {
	ProjectPath     string             `json:"project_path"`
	TotalInterfaces int                `json:"total_interfaces"`
	Interfaces      []*InterfaceRecord `json:"interfaces"`
}

type interfaceJSON struct {
	ID              string                    `json:"id"`
	InterfaceName   string                    `json:"interface_name"`
	BeanClass       *string                   `json:"bean_class"`
	FilePath        string                    `json:"file_path"`
	Package         string                    `json:"package"`
	Annotations     []string                  `json:"annotations"`
	InterfaceType   Category                  `json:"interface_type"`
	Methods         []javasrc.MethodSignature `json:"methods"`
	RelatedDTOs     []string                  `json:"related_dtos"`
	RelatedEntities []string                  `json:"related_entities"`
}

func (r *InterfaceRecord) MarshalJSON() ([]byte, error) {
	wire := interfaceJSON{
		ID:              r.ID,
		InterfaceName:   r.InterfaceName,
		FilePath:        r.FilePath,
		Package:         r.Package,
		Annotations:     nonNil(r.Annotations),
		InterfaceType:   r.Category,
		Methods:         r.Methods,
		RelatedDTOs:     nonNil(r.RelatedDTOs),
		RelatedEntities: nonNil(r.RelatedEntities),
	}
	if wire.Methods == nil {
		wire.Methods = []javasrc.MethodSignature{}
	}
	if r.BeanClass != "" {
		bean := r.BeanClass
		wire.BeanClass = &bean
	}
	return json.Marshal(wire)
}

func (r *InterfaceRecord) UnmarshalJSON(data []byte) error {
	var wire interfaceJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*r = InterfaceRecord{
		ID:              wire.ID,
		InterfaceName:   wire.InterfaceName,
		FilePath:        wire.FilePath,
		Package:         wire.Package,
		Annotations:     nonNil(wire.Annotations),
		Category:        wire.InterfaceType,
		Methods:         wire.Methods,
		RelatedDTOs:     nonNil(wire.RelatedDTOs),
		RelatedEntities: nonNil(wire.RelatedEntities),
	}
	if r.Methods == nil {
		r.Methods = []javasrc.MethodSignature{}
	}
	if wire.BeanClass != nil {
		r.BeanClass = *wire.BeanClass
	}
	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// GenerateManifest renders records as indented JSON. Non-ASCII text is kept as is.
func GenerateManifest(projectPath string, records []*InterfaceRecord) ([]byte, error) {
	if records == nil {
		records = []*InterfaceRecord{}
	}
	manifest := Manifest{
		ProjectPath:     projectPath,
		TotalInterfaces: len(records),
		Interfaces:      records,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(manifest); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "encode manifest")
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Manifest renders the analysis with GenerateManifest.
func (a *Analysis) Manifest() ([]byte, error) {
	return GenerateManifest(a.ProjectPath, a.Interfaces)
}

func ParseManifest(data []byte) (*Manifest, error) {
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, errors.CodeValidationError, "decode manifest")
	}
	if manifest.Interfaces == nil {
		manifest.Interfaces = []*InterfaceRecord{}
	}
	return &manifest, nil
}

// SaveManifest writes the manifest to path, creating parent directories.
func SaveManifest(path, projectPath string, records []*InterfaceRecord) error {
	data, err := GenerateManifest(projectPath, records)
	if err != nil {
		return err
	}
	if err := util.WriteFileWithDirs(path, data, 0o644); err != nil {
		return errors.AddContext(errors.Wrap(err, errors.CodeIO, "write manifest"), errors.CtxPath, path)
	}
	slog.Info("JSON manifest saved", "path", path)
	return nil
}
