package cmd

import (
	"context"
	"testing"

	"jobscout/internal/provider"
)

func TestFetchVocabularyFromFallbackProvider(t *testing.T) {
	p := &provider.WithFallback{}
	for _, kind := range []string{"industries", "skills"} {
		values, err := fetchVocabulary(context.Background(), p, kind)
		if err != nil {
			t.Fatalf("%s vocabulary failed: %v", kind, err)
		}
		if len(values) == 0 {
			t.Errorf("%s vocabulary is empty", kind)
		}
	}
}
