// Package verify checks that a processed document can still be consumed by
// the tools that read it next.
package verify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/oapi-codegen/oapi-codegen/v2/pkg/codegen"
	"github.com/pb33f/libopenapi"
	"github.com/pb33f/libopenapi/datamodel"
	"github.com/telkomindonesia/swagger-fixup/internal/document"
	"gopkg.in/yaml.v3"
)

// Document builds root with libopenapi and, for OpenAPI 3 documents, loads it
// with kin-openapi and generates models from it. Generated code is discarded.
func Document(ctx context.Context, root *yaml.Node, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	b, err := document.Encode(root)
	if err != nil {
		return fmt.Errorf("fail to encode document: %w", err)
	}

	doc, err := libopenapi.NewDocumentWithConfiguration(b, &datamodel.DocumentConfiguration{
		IgnorePolymorphicCircularReferences: true,
		IgnoreArrayCircularReferences:       true,
		Logger:                              logger,
	})
	if err != nil {
		return fmt.Errorf("fail to load openapi spec: %w", err)
	}

	if strings.HasPrefix(doc.GetVersion(), "2") {
		_, errs := doc.BuildV2Model()
		if err = errors.Join(errs...); err != nil {
			return fmt.Errorf("fail to build v2 openapi doc: %w", err)
		}
		return nil
	}

	_, errs := doc.BuildV3Model()
	if err = errors.Join(errs...); err != nil {
		return fmt.Errorf("fail to build v3 openapi doc: %w", err)
	}

	kinspec, err := loadKinDoc(ctx, b)
	if err != nil {
		return fmt.Errorf("fail to load openapi spec with kin: %w", err)
	}
	_, err = codegen.Generate(kinspec, codegen.Configuration{
		PackageName: "verify",
		Generate: codegen.GenerateOptions{
			Models: true,
		},
	})
	if err != nil {
		return fmt.Errorf("fail to generate models: %w", err)
	}
	logger.Debug("document verified", "version", doc.GetVersion(), "bytes", len(b))
	return nil
}

func loadKinDoc(ctx context.Context, data []byte) (doc *openapi3.T, err error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = false

	doc, err = loader.LoadFromData(data)
	return
}
