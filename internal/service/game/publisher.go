package game

import (
	"context"
	"errors"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

// MultiPublisher fans a message out to every publisher and joins their errors.
type MultiPublisher []Publisher

func (m MultiPublisher) Publish(ctx context.Context, gameID string, message domain.ServerMessage) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, gameID, message); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
