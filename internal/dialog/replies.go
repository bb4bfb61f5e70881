package dialog

import (
	"fmt"
	"strings"

	"complaint-intake-backend/internal/model"
)

const (
	replyEmptyMessage = "Please enter a valid message."
	replyNotFound     = "Please provide the correct machine name."
	replyExpired      = "Your session has expired. Please start over with the machine name."
	replyReset        = "Something went wrong with your session. It has been reset, please start over."
	replyInvalidType  = "Invalid type. Please specify 'hardware', 'process', or 'electrical'."
	replyAskType      = "Got it. Please specify the issue type (hardware/process/electrical)."
)

func replyTooLong(limit int) string {
	return fmt.Sprintf("Your message is too long. Please keep it under %d characters.", limit)
}

func replyMachineConfirmed(name, location string) string {
	return fmt.Sprintf("Machine %s detected in %s. Please describe the issue.", name, location)
}

func replyMultipleMachines(machines []model.Resource) string {
	return fmt.Sprintf("I found multiple machines: %s. Please reply with the exact machine name.", machineList(machines))
}

func replyNameNotMatched(machines []model.Resource) string {
	return fmt.Sprintf("I couldn't match that name. Please reply with one of: %s.", machineList(machines))
}

func replyComplaintFiled(reference, machineName string, assigned bool, location string) string {
	if assigned {
		return fmt.Sprintf("Complaint %s registered for %s. The incharge for %s has been notified.",
			reference, machineName, location)
	}
	return fmt.Sprintf("Complaint %s registered for %s. No active incharge found for %s; it will be assigned manually.",
		reference, machineName, location)
}

func machineList(machines []model.Resource) string {
	names := make([]string, len(machines))
	for i, m := range machines {
		names[i] = fmt.Sprintf("%s (%s)", m.Name, m.Location)
	}
	return strings.Join(names, ", ")
}
