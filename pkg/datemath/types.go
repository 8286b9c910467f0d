package datemath

import "errors"

// DueHourUTC is the fixed time of day assigned to portal due dates.
// The portal only publishes a calendar day, not a due time.
const DueHourUTC = 8

// PortalDateLayout is the portal's day-first date format (DD/MM/YYYY).
const PortalDateLayout = "02/01/2006"

// ErrInvalidDate is returned when a portal date cannot be parsed.
var ErrInvalidDate = errors.New("invalid portal date")
