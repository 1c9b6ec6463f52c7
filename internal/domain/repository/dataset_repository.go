package repository

import (
	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
)

// DatasetRepository reads the tabular cost input.
type DatasetRepository interface {
	// LoadDataset retorna *types.MalformedInputError quando o cabeçalho é inválido.
	LoadDataset(path string) (*entity.Dataset, error)
}
