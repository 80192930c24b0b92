package document

// Parameter is one documented input of a model.
type Parameter struct {
	Type     string `json:"type"     yaml:"type"`
	Name     string `json:"name"     yaml:"name"`
	Behavior string `json:"behavior" yaml:"behavior"`
}

// Element documents a single model.
type Element struct {
	Type        string      `json:"type"        yaml:"type"`
	Name        string      `json:"name"        yaml:"name"`
	Group       string      `json:"group"       yaml:"group"`
	Description string      `json:"description" yaml:"description"`
	Parameters  []Parameter `json:"parameters"  yaml:"parameters"`
	LastUpdated int64       `json:"lastUpdated" yaml:"lastUpdated"`
}

// Settings describes the documented project. RecordTime is not serialized.
type Settings struct {
	Description string   `json:"projectDescription" yaml:"projectDescription" mapstructure:"description"`
	URL         string   `json:"projectUrl"         yaml:"projectUrl"         mapstructure:"url"         validate:"omitempty,url"`
	Founded     int64    `json:"founded"            yaml:"founded"            mapstructure:"founded"     validate:"gte=0"`
	Maintainers []string `json:"maintainers"        yaml:"maintainers"        mapstructure:"maintainers" validate:"dive,required"`
	RecordTime  bool     `json:"-"                  yaml:"-"                  mapstructure:"record_time"`
}

// DocumentSet is the complete artifact. Elements are sorted by Type.
type DocumentSet struct {
	Elements []Element `json:"elements" yaml:"elements"`
	Settings Settings  `json:"settings" yaml:"settings"`
}

// Normalize replaces nil slices with empty ones so encodings never carry null.
func (s *DocumentSet) Normalize() {
	if s.Elements == nil {
		s.Elements = []Element{}
	}

	for i := range s.Elements {
		if s.Elements[i].Parameters == nil {
			s.Elements[i].Parameters = []Parameter{}
		}
	}

	if s.Settings.Maintainers == nil {
		s.Settings.Maintainers = []string{}
	}
}
