// Section payload tagged union. The source of truth for section shapes is the
// SectionType enumeration below; every type has exactly one payload struct and
// one default value, so DefaultSectionData stays a total function.
package models

import (
	"encoding/json"
	"fmt"
)

// SectionType enumerates the fixed set of content and question blocks.
type SectionType string

const (
	SectionTextBox        SectionType = "TEXT_BOX"
	SectionImage          SectionType = "IMAGE"
	SectionYouTube        SectionType = "YOUTUBE"
	SectionMaps           SectionType = "MAPS"
	SectionMultipleChoice SectionType = "MULTIPLE_CHOICE"
	SectionYesNo          SectionType = "YES_NO"
	SectionEssay          SectionType = "ESSAY"
	SectionImageChoice    SectionType = "IMAGE_CHOICE"
	SectionUploadFile     SectionType = "UPLOAD_FILE"
)

// SectionTypes lists every valid section type, in builder-palette order.
var SectionTypes = []SectionType{
	SectionTextBox,
	SectionImage,
	SectionYouTube,
	SectionMaps,
	SectionMultipleChoice,
	SectionYesNo,
	SectionEssay,
	SectionImageChoice,
	SectionUploadFile,
}

// Valid reports whether t is one of the known section types.
func (t SectionType) Valid() bool {
	switch t {
	case SectionTextBox, SectionImage, SectionYouTube, SectionMaps,
		SectionMultipleChoice, SectionYesNo, SectionEssay,
		SectionImageChoice, SectionUploadFile:
		return true
	}
	return false
}

// IsQuestion reports whether sections of this type collect an answer.
// Content types (text, image, video, map) render only; question types feed
// the required-section completion gate.
func (t SectionType) IsQuestion() bool {
	switch t {
	case SectionMultipleChoice, SectionYesNo, SectionEssay,
		SectionImageChoice, SectionUploadFile:
		return true
	}
	return false
}

// SectionData is the tagged-union interface over per-type payloads.
// Exactly one implementation exists per SectionType.
type SectionData interface {
	// DataType returns the section type this payload belongs to.
	DataType() SectionType
}

// TextBoxData is rich-text HTML content.
type TextBoxData struct {
	Content string `json:"content"`
}

// ImageData is an image with optional caption and annotation overlay.
type ImageData struct {
	URL         string `json:"url"`
	Caption     string `json:"caption"`
	Annotations string `json:"annotations"`
}

// YouTubeData embeds a video by URL.
type YouTubeData struct {
	URL string `json:"url"`
}

// MapsData embeds a location map.
type MapsData struct {
	Location string `json:"location"`
	EmbedURL string `json:"embedUrl"`
}

// ChoiceOption is one selectable option of a multiple-choice question.
type ChoiceOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// MultipleChoiceData is a single-answer question over labeled options.
type MultipleChoiceData struct {
	Question        string         `json:"question"`
	Options         []ChoiceOption `json:"options"`
	CorrectOptionID *string        `json:"correctOptionId"`
}

// YesNoData is a boolean question. CorrectAnswer nil means ungraded.
type YesNoData struct {
	Question      string `json:"question"`
	CorrectAnswer *bool  `json:"correctAnswer"`
}

// EssayData is a free-text question. MaxLength nil means unlimited.
type EssayData struct {
	Prompt      string `json:"prompt"`
	Placeholder string `json:"placeholder"`
	MaxLength   *int   `json:"maxLength"`
}

// ImageChoiceOption is one selectable image of an image-choice question.
type ImageChoiceOption struct {
	ID       string `json:"id"`
	ImageURL string `json:"imageUrl"`
	Label    string `json:"label"`
}

// ImageChoiceData is a single-answer question over images.
type ImageChoiceData struct {
	Question        string              `json:"question"`
	Options         []ImageChoiceOption `json:"options"`
	CorrectOptionID *string             `json:"correctOptionId"`
}

// UploadFileData asks the user to upload a file.
type UploadFileData struct {
	Prompt       string `json:"prompt"`
	AllowedTypes string `json:"allowedTypes"`
	MaxSizeMB    int    `json:"maxSizeMB"`
}

func (TextBoxData) DataType() SectionType        { return SectionTextBox }
func (ImageData) DataType() SectionType          { return SectionImage }
func (YouTubeData) DataType() SectionType        { return SectionYouTube }
func (MapsData) DataType() SectionType           { return SectionMaps }
func (MultipleChoiceData) DataType() SectionType { return SectionMultipleChoice }
func (YesNoData) DataType() SectionType          { return SectionYesNo }
func (EssayData) DataType() SectionType          { return SectionEssay }
func (ImageChoiceData) DataType() SectionType    { return SectionImageChoice }
func (UploadFileData) DataType() SectionType     { return SectionUploadFile }

// DefaultSectionData returns the initial payload for a newly created section
// of the given type. newID supplies identifiers for generated options.
//
// This is a total function over valid section types; an unknown type yields
// an error instead of a half-initialized payload.
func DefaultSectionData(t SectionType, newID func() string) (SectionData, error) {
	switch t {
	case SectionTextBox:
		return TextBoxData{Content: "<p>Enter text here...</p>"}, nil
	case SectionImage:
		return ImageData{}, nil
	case SectionYouTube:
		return YouTubeData{}, nil
	case SectionMaps:
		return MapsData{}, nil
	case SectionMultipleChoice:
		return MultipleChoiceData{
			Options: []ChoiceOption{
				{ID: newID(), Label: "Option A"},
				{ID: newID(), Label: "Option B"},
			},
		}, nil
	case SectionYesNo:
		return YesNoData{}, nil
	case SectionEssay:
		return EssayData{Placeholder: "Write your answer here..."}, nil
	case SectionImageChoice:
		return ImageChoiceData{
			Options: []ImageChoiceOption{
				{ID: newID(), Label: "Choice A"},
				{ID: newID(), Label: "Choice B"},
			},
		}, nil
	case SectionUploadFile:
		return UploadFileData{MaxSizeMB: 10}, nil
	}
	return nil, fmt.Errorf("unknown section type %q", t)
}

// UnmarshalSectionData decodes a raw JSON payload into the concrete struct
// for the given section type. Used by Section.UnmarshalJSON and by handlers
// that accept a whole-object data replacement.
func UnmarshalSectionData(t SectionType, raw []byte) (SectionData, error) {
	switch t {
	case SectionTextBox:
		var d TextBoxData
		return d, json.Unmarshal(raw, &d)
	case SectionImage:
		var d ImageData
		return d, json.Unmarshal(raw, &d)
	case SectionYouTube:
		var d YouTubeData
		return d, json.Unmarshal(raw, &d)
	case SectionMaps:
		var d MapsData
		return d, json.Unmarshal(raw, &d)
	case SectionMultipleChoice:
		var d MultipleChoiceData
		return d, json.Unmarshal(raw, &d)
	case SectionYesNo:
		var d YesNoData
		return d, json.Unmarshal(raw, &d)
	case SectionEssay:
		var d EssayData
		return d, json.Unmarshal(raw, &d)
	case SectionImageChoice:
		var d ImageChoiceData
		return d, json.Unmarshal(raw, &d)
	case SectionUploadFile:
		var d UploadFileData
		return d, json.Unmarshal(raw, &d)
	}
	return nil, fmt.Errorf("unknown section type %q", t)
}

// UnmarshalJSON decodes a section, dispatching the data payload on the type
// tag so the persisted document round-trips into concrete payload structs.
func (s *Section) UnmarshalJSON(b []byte) error {
	type shadow struct {
		ID         string          `json:"id"`
		PageID     string          `json:"pageId"`
		Index      int             `json:"index"`
		Type       SectionType     `json:"type"`
		ColorTheme ColorTheme      `json:"colorTheme"`
		Data       json.RawMessage `json:"data"`
		Required   bool            `json:"required"`
	}
	var sh shadow
	if err := json.Unmarshal(b, &sh); err != nil {
		return err
	}
	s.ID = sh.ID
	s.PageID = sh.PageID
	s.Index = sh.Index
	s.Type = sh.Type
	s.ColorTheme = sh.ColorTheme
	s.Required = sh.Required
	if len(sh.Data) == 0 || string(sh.Data) == "null" {
		s.Data = nil
		return nil
	}
	data, err := UnmarshalSectionData(sh.Type, sh.Data)
	if err != nil {
		return fmt.Errorf("section %s: %w", sh.ID, err)
	}
	s.Data = data
	return nil
}
