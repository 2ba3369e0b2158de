package mapping

import (
	"encoding/json"
	"time"

	"github.com/SscSPs/front_desk_log/internal/core/domain"
	"github.com/SscSPs/front_desk_log/internal/models"
)

// ToModelEditHistory converts a domain AuditRecord to a model EditHistory
func ToModelEditHistory(d domain.AuditRecord) models.EditHistory {
	return models.EditHistory{
		AuditID:       d.AuditID,
		HotelID:       d.HotelID,
		EntityType:    string(d.EntityType),
		EntityID:      d.EntityID,
		PreviousValue: []byte(d.PreviousValue),
		EditedAt:      d.EditedAt,
		EditedBy:      d.EditedBy,
	}
}

// ToDomainAuditRecord converts a model EditHistory to a domain AuditRecord
func ToDomainAuditRecord(m models.EditHistory) domain.AuditRecord {
	return domain.AuditRecord{
		AuditID:       m.AuditID,
		HotelID:       m.HotelID,
		EntityType:    domain.AuditEntityType(m.EntityType),
		EntityID:      m.EntityID,
		PreviousValue: json.RawMessage(m.PreviousValue),
		EditedAt:      m.EditedAt,
		EditedBy:      m.EditedBy,
	}
}

// ToDomainAuditRecordSlice converts a slice of model EditHistory rows
func ToDomainAuditRecordSlice(ms []models.EditHistory) []domain.AuditRecord {
	ds := make([]domain.AuditRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAuditRecord(m)
	}
	return ds
}

// ToDomainHotel converts a model Hotel to a domain Hotel
func ToDomainHotel(m models.Hotel) domain.Hotel {
	var created time.Time
	if m.CreatedAt != nil {
		created = *m.CreatedAt
	}
	return domain.Hotel{
		HotelID:   m.HotelID,
		Name:      m.Name,
		Code:      m.Code,
		PIN:       m.PIN,
		CreatedAt: created,
	}
}
