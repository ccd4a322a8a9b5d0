/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package booking holds the small independent settings of the bookings
// wizard: the kind of service offered, blackout dates and partial availability.
package booking

import (
	"errors"
	"fmt"
)

// ErrUnknownServiceType is returned for values outside the service type list.
var ErrUnknownServiceType = errors.New("unknown service type")

// ServiceType enumerates the businesses the wizard is tailored for.
type ServiceType string

const (
	ServiceHairSalon  ServiceType = "hair-salon"
	ServiceFitness    ServiceType = "fitness"
	ServiceConsulting ServiceType = "consulting"
)

// DefaultServiceType is preselected on a new wizard.
const DefaultServiceType = ServiceHairSalon

var serviceLabels = map[ServiceType]string{
	ServiceHairSalon:  "Hair salon - Barbershop - etc",
	ServiceFitness:    "Fitness Studio",
	ServiceConsulting: "Consulting",
}

// ServiceTypes lists the options in display order.
func ServiceTypes() []ServiceType {
	return []ServiceType{ServiceHairSalon, ServiceFitness, ServiceConsulting}
}

// ParseServiceType validates a submitted option value.
func ParseServiceType(value string) (ServiceType, error) {
	st := ServiceType(value)
	if _, ok := serviceLabels[st]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownServiceType, value)
	}
	return st, nil
}

// Label is the text shown in the select box.
func (s ServiceType) Label() string {
	return serviceLabels[s]
}
