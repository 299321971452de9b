package blobsvc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sir_venger/blob_functions/internal/models"
	"github.com/sir_venger/blob_functions/internal/storage"
)

// DefaultMaxResults — размер страницы листинга, если клиент его не указал.
const DefaultMaxResults = 50

// Service объединяет операции над контейнером, которые обслуживают HTTP-обработчики.
type Service interface {
	Container() string
	List(ctx context.Context, prefix string, maxResults int) ([]models.Blob, error)
	Upload(ctx context.Context, file models.UploadedFile) (models.FileInfo, error)
	Probe(ctx context.Context) models.ConnectivityTests
}

type Deps struct {
	// Open создаёт клиент бэкенда; вызывается на каждую операцию, общего
	// состояния между запросами нет.
	Open      storage.Opener
	Container string
	Logger    zerolog.Logger

	// Now и NewID подменяются в тестах.
	Now   func() time.Time
	NewID func() string
}

type Blobs struct {
	Deps
}

// New конструирует сервис с заданными зависимостями.
func New(deps Deps) *Blobs {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}
	return &Blobs{Deps: deps}
}

var _ Service = (*Blobs)(nil)

func (s *Blobs) Container() string {
	return s.Deps.Container
}
