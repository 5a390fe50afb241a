// Package iocache keeps the optional run history of aggregate runs.
package iocache

import (
	"sync"

	"github.com/huangsam/ytdash/internal/contract"
)

// AnalysisStoreManager holds the process-wide AnalysisStore.
type AnalysisStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	analysis     contract.AnalysisStore
}

var _ contract.StoreManager = &AnalysisStoreManager{} // Compile-time check

// GetAnalysisStore returns the AnalysisStore, nil before InitStores.
func (mgr *AnalysisStoreManager) GetAnalysisStore() contract.AnalysisStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.analysis
}
