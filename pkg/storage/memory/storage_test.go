package memory

import (
	"testing"
	"time"

	"github.com/fadedpez/termitaire/pkg/storage"
	"github.com/fadedpez/termitaire/pkg/storage/storagetest"
	"github.com/stretchr/testify/suite"
)

func TestStorage(t *testing.T) {
	suite.Run(t, &storagetest.Suite{
		Factory: func() (storage.Storage, func(time.Time)) {
			s := New()
			return s, func(now time.Time) { s.now = func() time.Time { return now } }
		},
	})
}
