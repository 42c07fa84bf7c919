package constants

// botosafe response codes
// these consist of 4 digit numbers
//
// the 1st 3 are randomly generated but represent specific scenarios
// 4th indicates if the response requires user interaction through a dialog box. 0 means it does not require. 1 means it requires.

var OTP_VERIFICATION_REQUIRED uint = 9110 // take the user to the otp page to finish signing in
var FACE_VERIFICATION_REQUIRED uint = 9120 // take the user to the face scan page to finish signing in
var NO_FACE_ON_FILE uint = 4110           // take the user to the face registration page
var FACE_NOT_RECOGNIZED uint = 4120       // retry the liveness and scan flow
var VOTE_TOKEN_EXPIRED uint = 6170        // restart the verification flow to mint a fresh token
var ALREADY_VOTED uint = 5240             // display the already-voted page

var SUPPORT_EMAIL = "help@botosafe.io"
