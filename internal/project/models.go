package project

// StoredImage is a normalized captured frame, encoded as JPEG bytes. Frames
// are serialized to JSON as base64 when the collection is persisted.
type StoredImage []byte

// Project is a named, ordered sequence of captured frames.
type Project struct {
	Name   string        `json:"name"`
	Frames []StoredImage `json:"frames"`
}

// Clone returns a deep copy so callers can hold results without racing
// registry mutations.
func (p Project) Clone() Project {
	out := Project{Name: p.Name}
	if len(p.Frames) == 0 {
		return out
	}
	out.Frames = make([]StoredImage, len(p.Frames))
	for i, frame := range p.Frames {
		buf := make(StoredImage, len(frame))
		copy(buf, frame)
		out.Frames[i] = buf
	}
	return out
}

// Collection is the full set of projects, persisted as a single unit.
type Collection struct {
	Projects []Project `json:"projects"`
}

// Clone deep-copies the collection.
func (c Collection) Clone() Collection {
	out := Collection{}
	if len(c.Projects) == 0 {
		return out
	}
	out.Projects = make([]Project, len(c.Projects))
	for i, p := range c.Projects {
		out.Projects[i] = p.Clone()
	}
	return out
}

// Summary describes a project without its frame payloads.
type Summary struct {
	Name       string
	FrameCount int
}
