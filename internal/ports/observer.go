package ports

import (
	"time"

	"github.com/baditaflorin/go_text_formatter/internal/core/domain"
)

// Observer receives one notification per handled request.
// Implementations must be safe for concurrent use.
type Observer interface {
	Observe(outcome domain.Outcome, elapsed time.Duration)
}
