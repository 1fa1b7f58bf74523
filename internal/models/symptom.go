package models

type SymptomType struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"not null" json:"name"`
	Icon      string `gorm:"not null" json:"icon"`
	Color     string `gorm:"not null" json:"color"`
	IsBuiltin bool   `gorm:"not null" json:"is_builtin"`
}

func (SymptomType) TableName() string {
	return "symptom_types"
}

type BuiltinSymptom struct {
	Name  string
	Icon  string
	Color string
}

// DefaultBuiltinSymptoms is the seeded catalog, in display order.
func DefaultBuiltinSymptoms() []BuiltinSymptom {
	return []BuiltinSymptom{
		{Name: "Cramps", Icon: "🩸", Color: "#FF6B8B"},
		{Name: "Bloating", Icon: "🎈", Color: "#FF9800"},
		{Name: "Headache", Icon: "🤕", Color: "#F44336"},
		{Name: "Fatigue", Icon: "😴", Color: "#9C27B0"},
		{Name: "Breast pain", Icon: "💔", Color: "#E91E63"},
		{Name: "Insomnia", Icon: "🌙", Color: "#2196F3"},
		{Name: "Back pain", Icon: "🦴", Color: "#8E6E53"},
		{Name: "Nausea", Icon: "🤢", Color: "#7CB342"},
		{Name: "Acne", Icon: "🔴", Color: "#E74C3C"},
	}
}
