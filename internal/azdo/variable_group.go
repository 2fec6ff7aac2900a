package azdo

import "encoding/json"

// VariableGroup is a distributed task variable group as returned by the Azure DevOps API
type VariableGroup struct {
	ID                             int                     `json:"id,omitempty"`
	Type                           string                  `json:"type,omitempty"`
	Name                           string                  `json:"name"`
	Description                    string                  `json:"description,omitempty"`
	ProviderData                   json.RawMessage         `json:"providerData,omitempty"`
	Variables                      map[string]Variable     `json:"variables"`
	VariableGroupProjectReferences []ProjectReferenceEntry `json:"variableGroupProjectReferences,omitempty"`
	IsShared                       bool                    `json:"isShared,omitempty"`
	CreatedBy                      json.RawMessage         `json:"createdBy,omitempty"`
	CreatedOn                      string                  `json:"createdOn,omitempty"`
	ModifiedBy                     json.RawMessage         `json:"modifiedBy,omitempty"`
	ModifiedOn                     string                  `json:"modifiedOn,omitempty"`
}

// Variable is a single variable group entry. Value is nil for secrets read back from the API.
type Variable struct {
	Value      *string `json:"value"`
	IsSecret   bool    `json:"isSecret"`
	IsReadOnly bool    `json:"isReadOnly,omitempty"`
}

// ProjectReferenceEntry grants a project access to a variable group
type ProjectReferenceEntry struct {
	Name             string            `json:"name"`
	Description      string            `json:"description,omitempty"`
	ProjectReference *ProjectReference `json:"projectReference"`
}

type ProjectReference struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// NewVariable returns a variable holding a copy of value
func NewVariable(value string, secret bool) Variable {
	return Variable{
		Value:    &value,
		IsSecret: secret,
	}
}

type variableGroupList struct {
	Count int             `json:"count"`
	Value []VariableGroup `json:"value"`
}

type variableGroupListOptions struct {
	GroupName string `url:"groupName"`
}
