package services

import (
	"fmt"

	"github.com/Dosada05/tabletennis/models"
)

type categoryEvent string

const (
	eventClose          categoryEvent = "close"
	eventReopen         categoryEvent = "reopen"
	eventStart          categoryEvent = "start"
	eventGroupsComplete categoryEvent = "groups_complete"
	eventFinalComplete  categoryEvent = "final_complete"
)

// nextStatus is the category lifecycle table. Every status change goes through it.
func nextStatus(format models.CategoryFormat, from models.CategoryStatus, event categoryEvent) (models.CategoryStatus, error) {
	switch {
	case from == models.StatusRegistration && event == eventClose:
		return models.StatusRegistrationClosed, nil

	case from == models.StatusRegistrationClosed && event == eventReopen:
		return models.StatusRegistration, nil

	case from == models.StatusRegistrationClosed && event == eventStart:
		switch format {
		case models.FormatSingleElimination:
			return models.StatusInProgress, nil
		case models.FormatGroupsThenElimination, models.FormatRoundRobin:
			return models.StatusGroupStage, nil
		}

	case from == models.StatusGroupStage && event == eventGroupsComplete:
		switch format {
		case models.FormatGroupsThenElimination:
			return models.StatusInProgress, nil
		case models.FormatRoundRobin:
			return models.StatusCompleted, nil
		}

	case from == models.StatusInProgress && event == eventFinalComplete:
		return models.StatusCompleted, nil
	}

	return "", fmt.Errorf("%w: cannot apply %s to %s category in status %s", ErrInvalidState, event, format, from)
}
