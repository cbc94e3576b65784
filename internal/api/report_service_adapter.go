package api

import "github.com/dorlog/backend/internal/services"

type reportStoreAdapter struct {
	store Store
}

func newReportStoreAdapter(store Store) services.ReportStore {
	return &reportStoreAdapter{store: store}
}

func (a *reportStoreAdapter) ListReportDocuments() ([]services.RawDocument, error) {
	entries, err := a.store.ListDiaryEntries()
	if err != nil {
		return nil, err
	}
	out := make([]services.RawDocument, 0, len(entries))
	for _, e := range entries {
		out = append(out, convertRawDocument(e))
	}
	return out, nil
}

var _ services.ReportStore = (*reportStoreAdapter)(nil)
