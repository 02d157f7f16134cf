// Package xmldoc implements the xml settings document format
// (default file name portable.config):
//
//	<?xml version="1.0" encoding="utf-8"?>
//	<configuration>
//	  <userSettings>
//	    <Roaming>
//	      <MySettings>
//	        <Count>42</Count>
//	        <Owner><Person><Name>John</Name></Person></Owner>
//	      </MySettings>
//	    </Roaming>
//	    <PC_WORKSTATION>...</PC_WORKSTATION>
//	  </userSettings>
//	</configuration>
//
// Scope group, setting and machine names are encoded into valid element
// names with EncodeName. Structured xml settings are stored as literal child
// elements of the setting element.
//
// Only the skeleton (configuration, userSettings, branch and scope elements)
// is indented. Setting elements are written exactly as they are, and carriage
// returns are written as &#xD; so values keep their line endings across a
// save and load.
package xmldoc
