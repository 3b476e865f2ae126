package enums

import "fmt"

// MaintenanceStatus tracks a repair order through its lifecycle. Transitions are
// deliberately unconstrained: any status may be set from any other.
type MaintenanceStatus string

const (
	MaintenanceStatusPending    MaintenanceStatus = "pendente"
	MaintenanceStatusInProgress MaintenanceStatus = "em_progresso"
	MaintenanceStatusCompleted  MaintenanceStatus = "concluida"
	MaintenanceStatusCancelled  MaintenanceStatus = "cancelada"
)

var validMaintenanceStatuses = []MaintenanceStatus{
	MaintenanceStatusPending,
	MaintenanceStatusInProgress,
	MaintenanceStatusCompleted,
	MaintenanceStatusCancelled,
}

// String implements fmt.Stringer.
func (s MaintenanceStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known MaintenanceStatus.
func (s MaintenanceStatus) IsValid() bool {
	for _, candidate := range validMaintenanceStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsOpen reports whether the order still counts toward pending maintenance work.
func (s MaintenanceStatus) IsOpen() bool {
	return s == MaintenanceStatusPending || s == MaintenanceStatusInProgress
}

// ParseMaintenanceStatus converts raw input into a MaintenanceStatus.
func ParseMaintenanceStatus(value string) (MaintenanceStatus, error) {
	for _, candidate := range validMaintenanceStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid maintenance status %q", value)
}
