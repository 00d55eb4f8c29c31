package errorkind

import (
	"fmt"
)

type ErrorKind int

const (
	InvalidErrType ErrorKind = iota
	InternalCompilerError

	FileError

	LexInvalidSymbol

	ParseWrongToken
	ParseMemoryVarExists
	ParseRegisterVarExists
	ParseLabelExists
	ParseVariableDoesntExist
	ParseLabelDoesntExist
	ParseNoMainFunc
	ParseTooManyFuncs

	AllocFailed
)

func (et ErrorKind) String() string {
	v, ok := ErrorCodeMap[et]
	if !ok {
		panic(fmt.Sprintf("%d is not stringified", et))
	}
	return v
}

var ErrorCodeMap = map[ErrorKind]string{
	InvalidErrType:        "E001",
	InternalCompilerError:  "E002",
	FileError:              "E003",

	LexInvalidSymbol: "E100",

	ParseWrongToken:          "E201",
	ParseMemoryVarExists:     "E202",
	ParseRegisterVarExists:   "E203",
	ParseLabelExists:         "E204",
	ParseVariableDoesntExist: "E205",
	ParseLabelDoesntExist:    "E206",
	ParseNoMainFunc:          "E207",
	ParseTooManyFuncs:        "E208",

	AllocFailed: "E300",
}
