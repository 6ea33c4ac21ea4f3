package v1

import (
	"github.com/tinoosan/cinerator/internal/storage/memory"
	"github.com/tinoosan/cinerator/internal/storage/postgres"
)

var (
	_ Store = (*memory.Store)(nil)
	_ Store = (*postgres.Store)(nil)
)
