package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionQuiz    = "quiz"
	actionCard    = "card"
	actionResult  = "result"
	actionGrammar = "grammar"
)

// Quiz sub-actions.
const (
	quizAnswer = "answer"
)

// Card sub-actions.
const (
	cardReveal = "reveal"
	cardKnow   = "know"
	cardMiss   = "miss"
)

// Result sub-actions.
const (
	resultRestart = "restart"
	resultReview  = "review"
	resultExit    = "exit"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// buildQuizAnswerCallback builds callback data for answering the question
// with the given 1-based number by selecting an option index.
func buildQuizAnswerCallback(questionNum, optionIndex int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizAnswer, strconv.Itoa(questionNum), strconv.Itoa(optionIndex)},
	}.encode()
}

// buildCardCallback builds callback data for flashcard actions.
func buildCardCallback(subAction string, questionNum int) string {
	return callbackData{
		Action: actionCard,
		Params: []string{subAction, strconv.Itoa(questionNum)},
	}.encode()
}

// buildResultCallback builds callback data for the results screen actions.
func buildResultCallback(subAction string) string {
	return callbackData{
		Action: actionResult,
		Params: []string{subAction},
	}.encode()
}

// buildGrammarPageCallback builds callback data for opening a grammar
// lesson page.
func buildGrammarPageCallback(page int) string {
	return callbackData{
		Action: actionGrammar,
		Params: []string{strconv.Itoa(page)},
	}.encode()
}
