package imagefile

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFamilies(t *testing.T) {
	environment := []EnvironmentError{
		ErrRemoteFetchDisabled,
		ErrCopyDestinationMustBeLocal,
		ErrFailedToCreateDestinationDirectory,
		ErrFailedToParseURL,
		ErrURLPathNotFound,
	}
	image := []ImageError{
		ErrFailedToCopyFromURL,
		ErrFileNotFound,
		ErrUnsupportedMimeType,
		ErrFailedToScaleImage,
		ErrFailedToSaveAfterScaling,
	}

	seen := make(map[string]bool)
	for _, e := range environment {
		if !IsEnvironmentError(e) || IsImageError(e) {
			t.Errorf("%v should belong to the environment family only", e)
		}
		if seen[e.Error()] {
			t.Errorf("duplicate message %q", e.Error())
		}
		seen[e.Error()] = true
	}
	for _, e := range image {
		if !IsImageError(e) || IsEnvironmentError(e) {
			t.Errorf("%v should belong to the image family only", e)
		}
		if seen[e.Error()] {
			t.Errorf("duplicate message %q", e.Error())
		}
		seen[e.Error()] = true
	}
}

func TestErrorFamilies_Wrapped(t *testing.T) {
	err := fmt.Errorf("loading banner: %w", ErrFileNotFound)

	if !IsImageError(err) {
		t.Error("IsImageError should see through wrapping")
	}
	if !errors.Is(err, ErrFileNotFound) {
		t.Error("errors.Is should match the sentinel")
	}
	if IsEnvironmentError(errors.New("plain")) {
		t.Error("a plain error is not an environment error")
	}
}
