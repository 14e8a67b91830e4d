package api

import "encoding/json"

// Response bodies are decoded key by key: a body parses only when it is a JSON
// object holding every required key, spelled exactly, with the right JSON type.
// null counts as missing. encoding/json's struct decoding matches keys
// case-insensitively, so it is not used for responses.

type askRequestDTO struct {
	Question string `json:"question"`
}

type askResponseDTO struct {
	Answer              *string
	Source              *string
	SystemPromptApplied *bool
}

type healthResponseDTO struct {
	Status          *string
	Version         *string
	GigachatEnabled *bool
}

// errorResponseDTO is the structured error body. code is optional.
type errorResponseDTO struct {
	Error *string
	Code  *string
}

func parseAskResponse(body []byte) (askResponseDTO, bool) {
	obj, ok := decodeObject(body)
	if !ok {
		return askResponseDTO{}, false
	}
	var dto askResponseDTO
	if !requiredField(obj, "answer", &dto.Answer) ||
		!requiredField(obj, "source", &dto.Source) ||
		!requiredField(obj, "system_prompt_applied", &dto.SystemPromptApplied) {
		return askResponseDTO{}, false
	}
	return dto, true
}

func parseHealthResponse(body []byte) (healthResponseDTO, bool) {
	obj, ok := decodeObject(body)
	if !ok {
		return healthResponseDTO{}, false
	}
	var dto healthResponseDTO
	if !requiredField(obj, "status", &dto.Status) ||
		!requiredField(obj, "version", &dto.Version) ||
		!requiredField(obj, "gigachat_enabled", &dto.GigachatEnabled) {
		return healthResponseDTO{}, false
	}
	return dto, true
}

func parseErrorResponse(body []byte) (errorResponseDTO, bool) {
	obj, ok := decodeObject(body)
	if !ok {
		return errorResponseDTO{}, false
	}
	var dto errorResponseDTO
	if !requiredField(obj, "error", &dto.Error) || !optionalField(obj, "code", &dto.Code) {
		return errorResponseDTO{}, false
	}
	return dto, true
}

func decodeObject(body []byte) (map[string]json.RawMessage, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// requiredField decodes obj[key] into dst. It fails when the key is absent,
// null, or of another JSON type.
func requiredField[T any](obj map[string]json.RawMessage, key string, dst **T) bool {
	raw, ok := obj[key]
	if !ok {
		return false
	}
	var v *T
	if err := json.Unmarshal(raw, &v); err != nil || v == nil {
		return false
	}
	*dst = v
	return true
}

// optionalField is requiredField with absent and null both accepted as nil.
func optionalField[T any](obj map[string]json.RawMessage, key string, dst **T) bool {
	raw, ok := obj[key]
	if !ok {
		return true
	}
	var v *T
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	*dst = v
	return true
}

// detail renders "{error} (код: {code})" with "unknown" for a missing code.
func (e errorResponseDTO) detail() string {
	code := "unknown"
	if e.Code != nil {
		code = *e.Code
	}
	return *e.Error + " (код: " + code + ")"
}
