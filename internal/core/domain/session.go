package domain

// ShiftState is everything the front desk needs after selecting a hotel.
type ShiftState struct {
	CurrentShift   *Shift           `json:"currentShift"`
	PreviousShift  *Shift           `json:"previousShift"`
	VisibleEntries []AnnotatedEntry `json:"visibleEntries"`
}
