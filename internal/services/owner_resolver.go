package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hamarpea/voicenter-crm-backend/internal/models"
)

// ContactGetter loads a contact by id
type ContactGetter interface {
	GetByID(id string) (*models.Contact, error)
}

// LeadGetter loads a lead by id
type LeadGetter interface {
	GetByID(id string) (*models.Lead, error)
}

// EntityOwnerResolver resolves the assigned owner of a contact or lead
type EntityOwnerResolver struct {
	contacts ContactGetter
	leads    LeadGetter
}

func NewEntityOwnerResolver(contacts ContactGetter, leads LeadGetter) *EntityOwnerResolver {
	return &EntityOwnerResolver{contacts: contacts, leads: leads}
}

// OwnerOf returns the entity's owner user id, or nil when the entity has
// no owner or no longer exists.
func (r *EntityOwnerResolver) OwnerOf(kind models.LinkKind, entityID string) (*string, error) {
	switch kind {
	case models.LinkContact:
		contact, err := r.contacts.GetByID(entityID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return contact.OwnerID, nil
	case models.LinkLead:
		lead, err := r.leads.GetByID(entityID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return lead.OwnerID, nil
	}
	return nil, nil
}
