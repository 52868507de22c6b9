package constants

// attendance event names carried on queued notification tasks
var ATTENDANCE_CHECKED_IN = "attendance.checked_in"
var ATTENDANCE_CHECKED_OUT = "attendance.checked_out"
var ATTENDANCE_MANUAL_ENTRY = "attendance.manual_entry"

// calendar date layout used for attendance day keys
var DATE_LAYOUT = "2006-01-02"

// wall clock layout used on employee work schedules
var SCHEDULE_TIME_LAYOUT = "15:04"

var SUPPORT_EMAIL = "support@attendly.io"
