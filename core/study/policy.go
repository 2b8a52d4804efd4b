package study

// Kind identifies an entity kind held by the Store.
type Kind int

const (
	KindSubject Kind = iota
	KindChapter
	KindSubtopic
	KindQuestion
	KindQuizSession
	KindQuizAnswer
	KindStudySession
	KindUserStats
	KindScheduleEvent
	KindMessage
	KindFile
	KindFolder
)

var kindNames = map[Kind]string{
	KindSubject:       "subjects",
	KindChapter:       "chapters",
	KindSubtopic:      "subtopics",
	KindQuestion:      "questions",
	KindQuizSession:   "quiz_sessions",
	KindQuizAnswer:    "quiz_answers",
	KindStudySession:  "study_sessions",
	KindUserStats:     "user_stats",
	KindScheduleEvent: "schedule_events",
	KindMessage:       "messages",
	KindFile:          "files",
	KindFolder:        "folders",
}

// String returns the collection name, also used as snapshot and table name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Policy is where a kind is persisted besides the in-memory cache.
type Policy int

const (
	PolicyNone      Policy = iota // memory only, lost on restart
	PolicyLocalFile               // whole-collection JSON snapshot
	PolicyRemote                  // remote store is the source of truth
)

func (p Policy) String() string {
	switch p {
	case PolicyLocalFile:
		return "local-file"
	case PolicyRemote:
		return "remote"
	default:
		return "none"
	}
}

// Policies is the persistence table consulted after every write.
var Policies = map[Kind]Policy{
	KindSubject:       PolicyLocalFile,
	KindChapter:       PolicyLocalFile,
	KindSubtopic:      PolicyNone,
	KindQuestion:      PolicyRemote,
	KindQuizSession:   PolicyNone,
	KindQuizAnswer:    PolicyNone,
	KindStudySession:  PolicyNone,
	KindUserStats:     PolicyNone,
	KindScheduleEvent: PolicyNone,
	KindMessage:       PolicyRemote,
	KindFile:          PolicyRemote,
	KindFolder:        PolicyRemote,
}

// PolicyOf returns the persistence policy of k, PolicyNone if k is unknown.
func PolicyOf(k Kind) Policy {
	return Policies[k]
}

// KindsWith returns the kinds persisted with p, in Kind order.
func KindsWith(p Policy) []Kind {
	kinds := make([]Kind, 0, len(Policies))
	for k := KindSubject; k <= KindFolder; k++ {
		if Policies[k] == p {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
