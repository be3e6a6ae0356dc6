package services

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/charlesng35/favorites/internal/models"
	"github.com/charlesng35/favorites/pkg/validator"
)

// ValidationMode selects the rule set applied to a favorite payload.
type ValidationMode int

const (
	// ModeCreate requires every field except description.
	ModeCreate ValidationMode = iota
	// ModeUpdate accepts any subset of fields.
	ModeUpdate
)

const (
	fieldTitle       = "title"
	fieldType        = "type"
	fieldDirector    = "director"
	fieldBudget      = "budget"
	fieldLocation    = "location"
	fieldDuration    = "duration"
	fieldYearTime    = "yearTime"
	fieldDescription = "description"
)

// favoriteFields is the order issues are reported in.
var favoriteFields = []string{
	fieldTitle, fieldType, fieldDirector, fieldBudget,
	fieldLocation, fieldDuration, fieldYearTime, fieldDescription,
}

const (
	issueInvalidType      = "invalid_type"
	issueTooSmall         = "too_small"
	issueInvalidEnumValue = "invalid_enum_value"
)

// CreateFavoriteInput is a fully populated, validated create payload.
type CreateFavoriteInput struct {
	Title       string
	Type        models.FavoriteType
	Director    string
	Budget      string
	Location    string
	Duration    string
	YearTime    string
	Description *string
}

// UpdateFavoriteInput describes mutable favorite fields. A nil pointer indicates no change.
type UpdateFavoriteInput struct {
	Title       *string
	Type        *models.FavoriteType
	Director    *string
	Budget      *string
	Location    *string
	Duration    *string
	YearTime    *string
	Description *string
}

// favoritePayload is the decoded form of the known keys. Absent keys stay nil.
type favoritePayload struct {
	Title       *string `mapstructure:"title" json:"title" validate:"omitnil,min=1"`
	Type        *string `mapstructure:"type" json:"type" validate:"omitnil,oneof=MOVIE TV_SHOW"`
	Director    *string `mapstructure:"director" json:"director" validate:"omitnil,min=1"`
	Budget      *string `mapstructure:"budget" json:"budget" validate:"omitnil,min=1"`
	Location    *string `mapstructure:"location" json:"location" validate:"omitnil,min=1"`
	Duration    *string `mapstructure:"duration" json:"duration" validate:"omitnil,min=1"`
	YearTime    *string `mapstructure:"yearTime" json:"yearTime" validate:"omitnil,min=1"`
	Description *string `mapstructure:"description" json:"description"`
}

// ValidateCreateFavorite checks a decoded JSON body against the create rules.
func ValidateCreateFavorite(raw any) (CreateFavoriteInput, error) {
	payload, err := validateFavoritePayload(raw, ModeCreate)
	if err != nil {
		return CreateFavoriteInput{}, err
	}
	return CreateFavoriteInput{
		Title:       *payload.Title,
		Type:        models.FavoriteType(*payload.Type),
		Director:    *payload.Director,
		Budget:      *payload.Budget,
		Location:    *payload.Location,
		Duration:    *payload.Duration,
		YearTime:    *payload.YearTime,
		Description: payload.Description,
	}, nil
}

// ValidateUpdateFavorite checks a decoded JSON body against the partial update rules.
func ValidateUpdateFavorite(raw any) (UpdateFavoriteInput, error) {
	payload, err := validateFavoritePayload(raw, ModeUpdate)
	if err != nil {
		return UpdateFavoriteInput{}, err
	}
	in := UpdateFavoriteInput{
		Title:       payload.Title,
		Director:    payload.Director,
		Budget:      payload.Budget,
		Location:    payload.Location,
		Duration:    payload.Duration,
		YearTime:    payload.YearTime,
		Description: payload.Description,
	}
	if payload.Type != nil {
		t := models.FavoriteType(*payload.Type)
		in.Type = &t
	}
	return in, nil
}

// ValidateFavoritePayload validates raw, normally the result of decoding a
// JSON body into an any. Unknown keys are ignored. Every failing field is
// reported in a single *ValidationError.
func ValidateFavoritePayload(raw any, mode ValidationMode) error {
	_, err := validateFavoritePayload(raw, mode)
	return err
}

func validateFavoritePayload(raw any, mode ValidationMode) (*favoritePayload, error) {
	fields, ok := raw.(map[string]any)
	if !ok {
		return nil, &ValidationError{Issues: validator.Issues{{
			Code:     issueInvalidType,
			Path:     []string{},
			Message:  fmt.Sprintf("Expected object, received %s", jsonKind(raw)),
			Expected: "object",
			Received: jsonKind(raw),
		}}}
	}

	issues := make(map[string]validator.Issue)
	present := make(map[string]any, len(favoriteFields))
	for _, field := range favoriteFields {
		value, exists := fields[field]
		if !exists {
			if mode == ModeCreate && field != fieldDescription {
				issues[field] = requiredIssue(field)
			}
			continue
		}
		if _, isString := value.(string); !isString {
			issues[field] = typeIssue(field, value)
			continue
		}
		present[field] = value
	}

	var payload favoritePayload
	if err := mapstructure.Decode(present, &payload); err != nil {
		return nil, fmt.Errorf("favorite service: decode payload: %w", err)
	}

	if err := validator.ValidateStruct(payload); err != nil {
		failures, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, fmt.Errorf("favorite service: validate payload: %w", err)
		}
		for _, failure := range failures {
			if _, seen := issues[failure.Field]; seen {
				continue
			}
			issues[failure.Field] = ruleIssue(failure)
		}
	}

	if len(issues) > 0 {
		ordered := make(validator.Issues, 0, len(issues))
		for _, field := range favoriteFields {
			if issue, ok := issues[field]; ok {
				ordered = append(ordered, issue)
			}
		}
		return nil, &ValidationError{Issues: ordered}
	}

	return &payload, nil
}

// Validate re-checks a programmatically built create input.
func (in CreateFavoriteInput) Validate() error {
	raw := map[string]any{
		fieldTitle:    in.Title,
		fieldType:     string(in.Type),
		fieldDirector: in.Director,
		fieldBudget:   in.Budget,
		fieldLocation: in.Location,
		fieldDuration: in.Duration,
		fieldYearTime: in.YearTime,
	}
	if in.Description != nil {
		raw[fieldDescription] = *in.Description
	}
	return ValidateFavoritePayload(raw, ModeCreate)
}

// Validate re-checks a programmatically built update input.
func (in UpdateFavoriteInput) Validate() error {
	raw := map[string]any{}
	setIf := func(field string, value *string) {
		if value != nil {
			raw[field] = *value
		}
	}
	setIf(fieldTitle, in.Title)
	setIf(fieldDirector, in.Director)
	setIf(fieldBudget, in.Budget)
	setIf(fieldLocation, in.Location)
	setIf(fieldDuration, in.Duration)
	setIf(fieldYearTime, in.YearTime)
	setIf(fieldDescription, in.Description)
	if in.Type != nil {
		raw[fieldType] = string(*in.Type)
	}
	return ValidateFavoritePayload(raw, ModeUpdate)
}

// Empty reports whether the update carries no fields.
func (in UpdateFavoriteInput) Empty() bool {
	return in.Title == nil && in.Type == nil && in.Director == nil && in.Budget == nil &&
		in.Location == nil && in.Duration == nil && in.YearTime == nil && in.Description == nil
}

// MergeFavorite applies the supplied fields of in onto a copy of stored.
// The id and any field left nil are unchanged.
func MergeFavorite(stored models.Favorite, in UpdateFavoriteInput) models.Favorite {
	merged := stored
	if in.Title != nil {
		merged.Title = *in.Title
	}
	if in.Type != nil {
		merged.Type = *in.Type
	}
	if in.Director != nil {
		merged.Director = *in.Director
	}
	if in.Budget != nil {
		merged.Budget = *in.Budget
	}
	if in.Location != nil {
		merged.Location = *in.Location
	}
	if in.Duration != nil {
		merged.Duration = *in.Duration
	}
	if in.YearTime != nil {
		merged.YearTime = *in.YearTime
	}
	if in.Description != nil {
		description := *in.Description
		merged.Description = &description
	}
	return merged
}

func requiredIssue(field string) validator.Issue {
	expected := "string"
	if field == fieldType {
		expected = enumExpectation()
	}
	return validator.Issue{
		Code:     issueInvalidType,
		Path:     []string{field},
		Message:  "Required",
		Expected: expected,
		Received: "undefined",
	}
}

func typeIssue(field string, value any) validator.Issue {
	expected := "string"
	if field == fieldType {
		expected = enumExpectation()
	}
	kind := jsonKind(value)
	return validator.Issue{
		Code:     issueInvalidType,
		Path:     []string{field},
		Message:  fmt.Sprintf("Expected %s, received %s", expected, kind),
		Expected: expected,
		Received: kind,
	}
}

func ruleIssue(failure validator.ValidationError) validator.Issue {
	path := []string{failure.Field}
	switch failure.Tag {
	case "oneof":
		received, _ := failure.Value.(string)
		return validator.Issue{
			Code:     issueInvalidEnumValue,
			Path:     path,
			Message:  fmt.Sprintf("Invalid enum value. Expected %s, received '%s'", enumExpectation(), received),
			Received: received,
		}
	case "min":
		return validator.Issue{
			Code:    issueTooSmall,
			Path:    path,
			Message: fmt.Sprintf("String must contain at least %s character(s)", failure.Param),
		}
	default:
		return validator.Issue{
			Code:    "custom",
			Path:    path,
			Message: fmt.Sprintf("Failed %s validation", failure.Tag),
		}
	}
}

func enumExpectation() string {
	types := models.FavoriteTypes()
	quoted := make([]string, len(types))
	for i, t := range types {
		quoted[i] = "'" + string(t) + "'"
	}
	return strings.Join(quoted, " | ")
}

// jsonKind names the JSON type of a value produced by encoding/json.
func jsonKind(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int64, int32, uint, uint64, uint32:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}
