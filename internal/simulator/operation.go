package simulator

import (
	"errors"
	"fmt"
	"strings"
)

// Operation names one of the assistant actions offered by the demo panel.
type Operation int

const (
	OperationComplete Operation = iota + 1
	OperationExplain
	OperationRefactor
	OperationTest
	OperationDocument
)

const unknownOperationErrorFormat = "%w: %q"

// ErrUnknownOperation is returned for names or values outside the recognized set.
var ErrUnknownOperation = errors.New("unknown operation")

var operationNames = map[Operation]string{
	OperationComplete: "complete",
	OperationExplain:  "explain",
	OperationRefactor: "refactor",
	OperationTest:     "test",
	OperationDocument: "document",
}

var operationLabels = map[Operation]string{
	OperationComplete: "Complete",
	OperationExplain:  "Explain",
	OperationRefactor: "Refactor",
	OperationTest:     "Test",
	OperationDocument: "Document",
}

// Operations returns every recognized operation in panel order.
func Operations() []Operation {
	return []Operation{
		OperationComplete,
		OperationExplain,
		OperationRefactor,
		OperationTest,
		OperationDocument,
	}
}

// ParseOperation resolves a case-insensitive operation name.
func ParseOperation(name string) (Operation, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, operation := range Operations() {
		if operationNames[operation] == normalized {
			return operation, nil
		}
	}
	return 0, fmt.Errorf(unknownOperationErrorFormat, ErrUnknownOperation, name)
}

func (operation Operation) Valid() bool {
	_, ok := operationNames[operation]
	return ok
}

func (operation Operation) String() string {
	if name, ok := operationNames[operation]; ok {
		return name
	}
	return fmt.Sprintf("operation(%d)", int(operation))
}

// Label is the button caption shown for the operation.
func (operation Operation) Label() string {
	return operationLabels[operation]
}
