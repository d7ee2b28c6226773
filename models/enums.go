package models

// Card names an independently saved section of the screening page.
type Card string

const (
	CardScreeningInformation Card = "screening-information"
	CardNarrative            Card = "narrative"
	CardIncidentInformation  Card = "incident-information"
	CardAllegations          Card = "allegations"
	CardDecision             Card = "decision"
)

func (c Card) IsValid() bool {
	switch c {
	case CardScreeningInformation, CardNarrative, CardIncidentInformation, CardAllegations, CardDecision:
		return true
	}
	return false
}

// Operation keys the error notices kept per remote operation.
type Operation string

const (
	OperationFetch         Operation = "fetch"
	OperationCreate        Operation = "create"
	OperationSave          Operation = "save"
	OperationSubmit        Operation = "submit"
	OperationAllegations   Operation = "allegations"
	OperationRelationships Operation = "relationships"
	OperationHistory       Operation = "history"
	OperationDelete        Operation = "delete_participant"
	OperationAttach        Operation = "attach_participant"
)
