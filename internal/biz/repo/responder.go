package repo

import "context"

// ResponderRepo is the generative text backend interface
type ResponderRepo interface {
	// Generate returns freeform text for one user utterance under the given instructions
	Generate(ctx context.Context, instructions, utterance string) (string, error)
}
