package render

import (
	"net/http"
	"strconv"
)

// Alert headers consumed by the web client to show notifications
const (
	AppName = "controlDinersApp"

	HeaderAlert  = "X-" + AppName + "-alert"
	HeaderError  = "X-" + AppName + "-error"
	HeaderParams = "X-" + AppName + "-params"
)

const (
	actionCreated = "created"
	actionUpdated = "updated"
	actionDeleted = "deleted"
)

// Alert sets alert headers: 'controlDinersApp.<entity>.<action>' and its param
func Alert(w http.ResponseWriter, entity string, action string, param string) {
	w.Header().Set(HeaderAlert, AppName+"."+entity+"."+action)
	w.Header().Set(HeaderParams, param)
}

func EntityCreated(w http.ResponseWriter, entity string, id int64) {
	Alert(w, entity, actionCreated, strconv.FormatInt(id, 10))
}

func EntityUpdated(w http.ResponseWriter, entity string, id int64) {
	Alert(w, entity, actionUpdated, strconv.FormatInt(id, 10))
}

func EntityDeleted(w http.ResponseWriter, entity string, id int64) {
	Alert(w, entity, actionDeleted, strconv.FormatInt(id, 10))
}

// FailureAlert sets 'error.<key>' header and entity name as its param
func FailureAlert(w http.ResponseWriter, entity string, key string) {
	w.Header().Set(HeaderError, "error."+key)
	w.Header().Set(HeaderParams, entity)
}

// Failure renders ServiceError together with failure alert headers
func Failure(w http.ResponseWriter, entity string, key string, message string, code int) {
	FailureAlert(w, entity, key)
	ServiceError(w, message, code)
}
