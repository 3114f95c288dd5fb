package tinysh

// Login gate: a small state machine in front of the line editor. While a
// login callback is configured and the session is not authenticated, the
// gate consumes every byte and all editor behavior is suppressed.
const (
	gateIdle uint8 = iota // waiting for the trigger byte
	gateUser              // collecting the username (echoed)
	gatePass              // collecting the password (not echoed)
)

// handleLogin consumes one byte while unauthenticated.
func (sh *Shell) handleLogin(b byte) {
	switch sh.loginState {
	case gateIdle:
		if b == sh.loginTrigger {
			sh.loginState = gateUser
			sh.loginUserLen = 0
			sh.puts("login: ")
		}

	case gateUser:
		switch {
		case b == '\r' || b == '\n':
			sh.puts("\r\n")
			sh.loginState = gatePass
			sh.loginPassLen = 0
			sh.puts("password: ")
		case b == 0x7f || b == '\b':
			if sh.loginUserLen > 0 {
				sh.loginUserLen--
				sh.puts("\b \b")
			}
		case sh.loginUserLen < LineBufSize-1:
			sh.loginUser[sh.loginUserLen] = b
			sh.loginUserLen++
			sh.putByte(b)
		}

	case gatePass:
		switch {
		case b == '\r' || b == '\n':
			sh.puts("\r\n")
			user := string(sh.loginUser[:sh.loginUserLen])
			pass := string(sh.loginPass[:sh.loginPassLen])
			if sh.loginFn(user, pass) {
				sh.loggedIn = true
				sh.loginReset()
				sh.showPrompt()
			} else {
				sh.puts("Login failed\r\n")
				sh.loginReset()
			}
		case b == 0x7f || b == '\b':
			if sh.loginPassLen > 0 {
				sh.loginPassLen--
			}
		case sh.loginPassLen < LineBufSize-1:
			sh.loginPass[sh.loginPassLen] = b
			sh.loginPassLen++
		}
	}
}

// loginReset returns the gate to idle and clears captured credentials from
// memory.
func (sh *Shell) loginReset() {
	sh.loginState = gateIdle
	sh.loginUserLen = 0
	sh.loginPassLen = 0
	for i := range sh.loginUser {
		sh.loginUser[i] = 0
	}
	for i := range sh.loginPass {
		sh.loginPass[i] = 0
	}
}
