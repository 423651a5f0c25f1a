package snapshot

// MissionPatch is a partial mission update. Nil fields are left unchanged
// by the backend.
type MissionPatch struct {
	MissionNumber  *string        `json:"mission_number,omitempty"`
	Status         *MissionStatus `json:"status,omitempty"`
	Location       *string        `json:"location,omitempty"`
	Reason         *string        `json:"reason,omitempty"`
	AlarmingEntity *string        `json:"alarming_entity,omitempty"`
	Description    *string        `json:"description,omitempty"`
	Notes          *string        `json:"notes,omitempty"`
	Outcome        *string        `json:"outcome,omitempty"`
	ArmID          *string        `json:"arm_id,omitempty"`
	ArmType        *string        `json:"arm_type,omitempty"`
	ArmNotes       *string        `json:"arm_notes,omitempty"`
	NacaScore      *string        `json:"naca_score,omitempty"`
	SquadIDs       *[]int         `json:"squad_ids,omitempty"`
}

// FieldPatch builds a patch that changes a single editable field.
func FieldPatch(f Field, v string) MissionPatch {
	var p MissionPatch
	switch f {
	case FieldNotes:
		p.Notes = &v
	case FieldDescription:
		p.Description = &v
	case FieldLocation:
		p.Location = &v
	case FieldReason:
		p.Reason = &v
	case FieldAlarmingEntity:
		p.AlarmingEntity = &v
	case FieldMissionNumber:
		p.MissionNumber = &v
	}
	return p
}

// SquadIDsPatch builds a patch that replaces the mission roster.
func SquadIDsPatch(ids []int) MissionPatch {
	cp := append([]int{}, ids...)
	return MissionPatch{SquadIDs: &cp}
}

// NewMission is the payload for POST /api/missions.
type NewMission struct {
	MissionNumber  string `json:"mission_number,omitempty"`
	Location       string `json:"location"`
	Reason         string `json:"reason"`
	AlarmingEntity string `json:"alarming_entity,omitempty"`
	Description    string `json:"description"`
	Notes          string `json:"notes"`
	SquadIDs       []int  `json:"squad_ids,omitempty"`
}

// SquadPatch is a partial squad update.
type SquadPatch struct {
	Name           *string `json:"name,omitempty"`
	Qualification  *string `json:"qualification,omitempty"`
	Type           *string `json:"type,omitempty"`
	ServiceNumbers *string `json:"service_numbers,omitempty"`
	CustomLocation *string `json:"custom_location,omitempty"`
}

// LocationPatch sets or clears the operator location override.
func LocationPatch(location string) SquadPatch {
	return SquadPatch{CustomLocation: &location}
}

// NewSquad is the payload for POST /api/squads.
type NewSquad struct {
	Name           string `json:"name"`
	Qualification  string `json:"qualification,omitempty"`
	Type           string `json:"type,omitempty"`
	ServiceNumbers string `json:"service_numbers,omitempty"`
}

// ShiftSettings is the payload for POST/PUT /api/config.
type ShiftSettings struct {
	Location  *string  `json:"location,omitempty"`
	Address   *string  `json:"address,omitempty"`
	StartTime *string  `json:"start_time,omitempty"`
	EndTime   *string  `json:"end_time,omitempty"`
	Password  *string  `json:"password,omitempty"`
	Locations []string `json:"locations,omitempty"`
}

// LogEntry is an audit trail record.
type LogEntry struct {
	ID        int    `json:"id"`
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
	Details   string `json:"details"`
	MissionID *int   `json:"mission_id"`
	SquadID   *int   `json:"squad_id"`
}
