package port

import (
	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
)

type SnapshotEncoderPort interface {
	Format() string
	ContentType() string
	Encode(contacts []domain.Contact) ([]byte, error)
}

// SnapshotDecoderPort проверяет и разбирает файл импорта.
// Любая ошибка формата оборачивает domain.ErrInvalidSnapshot.
type SnapshotDecoderPort interface {
	Decode(data []byte) ([]domain.Contact, error)
}
