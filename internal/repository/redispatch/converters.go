package redispatch

import "shipflow/internal/entities"

func ToRedispatchItemDomain(model *RedispatchItemDB) *entities.RedispatchItem {
	return &entities.RedispatchItem{
		OrderID:       model.OrderID,
		Attempts:      model.Attempts,
		NextAttemptAt: model.NextAttemptAt,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

func ToRedispatchItemDomainList(models []RedispatchItemDB) []entities.RedispatchItem {
	items := make([]entities.RedispatchItem, 0, len(models))
	for i := range models {
		items = append(items, *ToRedispatchItemDomain(&models[i]))
	}
	return items
}
