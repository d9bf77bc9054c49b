// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package alerthandler

// OTP items of the OWNER_SW_CFG partition read by the ROM when it configures
// alert_handler.
const (
	OTPAlertClassEn             = "OWNER_SW_CFG_ROM_ALERT_CLASS_EN"
	OTPAlertEscalation          = "OWNER_SW_CFG_ROM_ALERT_ESCALATION"
	OTPAlertClassification      = "OWNER_SW_CFG_ROM_ALERT_CLASSIFICATION"
	OTPLocalAlertClassification = "OWNER_SW_CFG_ROM_LOCAL_ALERT_CLASSIFICATION"
	OTPAlertAccumThresh         = "OWNER_SW_CFG_ROM_ALERT_ACCUM_THRESH"
	OTPAlertTimeoutCycles       = "OWNER_SW_CFG_ROM_ALERT_TIMEOUT_CYCLES"
	OTPAlertPhaseCycles         = "OWNER_SW_CFG_ROM_ALERT_PHASE_CYCLES"
)
