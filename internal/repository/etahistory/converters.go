package etahistory

import "shipflow/internal/entities"

func ToEtaHistoryDomain(model *EtaHistoryDB) *entities.EtaHistory {
	return &entities.EtaHistory{
		ID:               model.ID,
		OrderID:          model.OrderID,
		DriverID:         model.DriverID,
		DistanceKm:       model.DistanceKm,
		PredictedMinutes: model.PredictedMinutes,
		ActualMinutes:    model.ActualMinutes,
		CreatedAt:        model.CreatedAt,
	}
}

func ToEtaHistoryDomainList(models []EtaHistoryDB) []entities.EtaHistory {
	records := make([]entities.EtaHistory, 0, len(models))
	for i := range models {
		records = append(records, *ToEtaHistoryDomain(&models[i]))
	}
	return records
}
