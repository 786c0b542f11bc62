package event

import "shipflow/internal/entities"

func ToEventDomain(model *EventDB) *entities.Event {
	return &entities.Event{
		Sequence:  model.Sequence,
		OrderID:   model.OrderID,
		Type:      model.Type,
		Payload:   model.Payload,
		CreatedAt: model.CreatedAt,
	}
}

func ToEventDomainList(models []EventDB) []entities.Event {
	events := make([]entities.Event, 0, len(models))
	for i := range models {
		events = append(events, *ToEventDomain(&models[i]))
	}
	return events
}
