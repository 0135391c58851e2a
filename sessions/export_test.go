package sessions

var ResetLoginLimiters = resetLoginLimiters
