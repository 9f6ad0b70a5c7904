package daemon

// Method identifies the kind of operation a [Task] asks for.
type Method int

const (
	MethodRetrieve Method = iota
	MethodGetTorrentDetails
	MethodGetFileList
	MethodAddByFile
	MethodAddByUrl
	MethodAddByMagnetUrl
	MethodRemove
	MethodPause
	MethodPauseAll
	MethodResume
	MethodResumeAll
	MethodStop
	MethodStopAll
	MethodStart
	MethodStartAll
	MethodSetFilePriorities
	MethodSetTransferRates
	MethodSetLabel
	MethodSetTrackers
	MethodSetDownloadLocation
	MethodSetAlternativeMode
	MethodGetStats
	MethodForceRecheck
)

var methodNames = [...]string{
	MethodRetrieve:            "Retrieve",
	MethodGetTorrentDetails:   "GetTorrentDetails",
	MethodGetFileList:         "GetFileList",
	MethodAddByFile:           "AddByFile",
	MethodAddByUrl:            "AddByUrl",
	MethodAddByMagnetUrl:      "AddByMagnetUrl",
	MethodRemove:              "Remove",
	MethodPause:               "Pause",
	MethodPauseAll:            "PauseAll",
	MethodResume:              "Resume",
	MethodResumeAll:           "ResumeAll",
	MethodStop:                "Stop",
	MethodStopAll:             "StopAll",
	MethodStart:               "Start",
	MethodStartAll:            "StartAll",
	MethodSetFilePriorities:   "SetFilePriorities",
	MethodSetTransferRates:    "SetTransferRates",
	MethodSetLabel:            "SetLabel",
	MethodSetTrackers:         "SetTrackers",
	MethodSetDownloadLocation: "SetDownloadLocation",
	MethodSetAlternativeMode:  "SetAlternativeMode",
	MethodGetStats:            "GetStats",
	MethodForceRecheck:        "ForceRecheck",
}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return "Unknown"
	}
	return methodNames[m]
}

// Methods returns every method in declaration order.
func Methods() []Method {
	out := make([]Method, len(methodNames))
	for i := range methodNames {
		out[i] = Method(i)
	}
	return out
}
