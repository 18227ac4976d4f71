// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package negotiation

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pion/negotiation/pkg/rtcerr"
	"github.com/pion/sdp/v3"
)

const bundleGroupToken = "BUNDLE"

// DescriptionFromSDP extracts the structured description model from a
// parsed SDP session. The SDP grammar itself is the parser's problem;
// everything rejected here is a structural violation of the model, not
// a syntax error.
func DescriptionFromSDP(sdpType SDPType, parsed *sdp.SessionDescription) (*SessionDescription, error) {
	if parsed == nil {
		return nil, &rtcerr.MalformedDescriptionError{Err: errNilDescription}
	}

	desc := &SessionDescription{Type: sdpType}

	bundled := map[string]bool{}
	for _, attr := range parsed.Attributes {
		if attr.Key != sdp.AttrKeyGroup || !strings.HasPrefix(attr.Value, bundleGroupToken) {
			continue
		}

		mids := strings.Fields(attr.Value)[1:]
		for _, mid := range mids {
			if bundled[mid] {
				return nil, &rtcerr.MalformedDescriptionError{Err: ErrMidInMultipleBundleGroups}
			}
			bundled[mid] = true
		}
		desc.Bundles = append(desc.Bundles, BundleGroup{Mids: mids})
	}

	for _, media := range parsed.MediaDescriptions {
		section, err := mediaSectionFromSDP(media)
		if err != nil {
			return nil, err
		}
		if section == nil {
			continue
		}
		desc.Sections = append(desc.Sections, *section)
	}

	return desc, nil
}

func mediaSectionFromSDP(media *sdp.MediaDescription) (*MediaSection, error) { //nolint:cyclop,gocognit
	kind := NewMediaKind(media.MediaName.Media)
	if kind == MediaKind(Unknown) {
		// Unknown media types pass through the engine untouched.
		return nil, nil //nolint:nilnil
	}

	section := &MediaSection{
		Kind:         kind,
		Direction:    DirectionSendrecv,
		Rejected:     media.MediaName.Port.Value == 0,
		PayloadTypes: map[uint8]Codec{},
	}

	// fmtp may precede the rtpmap it refines, merge at the end.
	parameters := map[uint8]map[string]string{}
	streamIndex := map[string]int{}

	for _, attr := range media.Attributes {
		switch attr.Key {
		case sdp.AttrKeyMID:
			section.Mid = attr.Value
		case directionSendrecvStr, directionSendonlyStr, directionRecvonlyStr, directionInactiveStr:
			section.Direction = NewDirection(attr.Key)
		case "rtpmap":
			pt, codec, err := parseRtpmap(attr.Value)
			if err != nil {
				return nil, err
			}
			section.PayloadTypes[pt] = codec
		case "fmtp":
			fields := strings.SplitN(attr.Value, " ", 2)
			if len(fields) != 2 {
				continue
			}
			pt, err := strconv.ParseUint(fields[0], 10, 8)
			if err != nil {
				return nil, &rtcerr.MalformedDescriptionError{Err: errMalformedRtpmap}
			}
			parameters[uint8(pt)] = parseParameterString(fields[1])
		case sdp.AttrKeyExtMap:
			ext, err := parseExtmap(attr.Value)
			if err != nil {
				return nil, err
			}
			section.HeaderExtensions = append(section.HeaderExtensions, ext)
		case sdp.AttrKeySSRC:
			fields := strings.Fields(attr.Value)
			if len(fields) == 0 {
				return nil, &rtcerr.MalformedDescriptionError{Err: errMalformedSSRC}
			}
			ssrc, err := strconv.ParseUint(fields[0], 10, 32)
			if err != nil {
				return nil, &rtcerr.MalformedDescriptionError{Err: errMalformedSSRC}
			}
			if len(fields) < 2 || !strings.HasPrefix(fields[1], "cname:") {
				continue
			}
			cname := strings.TrimPrefix(fields[1], "cname:")
			idx, ok := streamIndex[cname]
			if !ok {
				idx = len(section.Streams)
				streamIndex[cname] = idx
				section.Streams = append(section.Streams, MediaStream{CName: cname})
			}
			section.Streams[idx].SSRCs = append(section.Streams[idx].SSRCs, SSRC(ssrc))
		case sdp.AttrKeySSRCGroup:
			group, err := parseSSRCGroup(attr.Value)
			if err != nil {
				return nil, err
			}
			section.SSRCGroups = append(section.SSRCGroups, group)
		case "rid":
			fields := strings.Fields(attr.Value)
			if len(fields) == 0 {
				continue
			}
			rid := Rid{ID: fields[0]}
			if len(fields) > 1 {
				// rid carries "send" or "recv", not the section keywords.
				switch fields[1] {
				case "send":
					rid.Direction = DirectionSendonly
				case "recv":
					rid.Direction = DirectionRecvonly
				}
			}
			section.Rids = append(section.Rids, rid)
		case "simulcast":
			section.Simulcast = true
		}
	}

	for pt, params := range parameters {
		codec, ok := section.PayloadTypes[pt]
		if !ok {
			continue
		}
		codec.Parameters = params
		section.PayloadTypes[pt] = codec
	}

	return section, nil
}

// parseRtpmap parses an attribute of the form
// "111 opus/48000/2" into a payload type and Codec.
func parseRtpmap(value string) (uint8, Codec, error) {
	fields := strings.Fields(value)
	if len(fields) != 2 {
		return 0, Codec{}, &rtcerr.MalformedDescriptionError{Err: errMalformedRtpmap}
	}

	pt, err := strconv.ParseUint(fields[0], 10, 8)
	if err != nil {
		return 0, Codec{}, &rtcerr.MalformedDescriptionError{Err: errMalformedRtpmap}
	}

	split := strings.Split(fields[1], "/")
	codec := Codec{Name: split[0]}
	if len(split) > 1 {
		clockRate, err := strconv.ParseUint(split[1], 10, 32)
		if err != nil {
			return 0, Codec{}, &rtcerr.MalformedDescriptionError{Err: errMalformedRtpmap}
		}
		codec.ClockRate = uint32(clockRate)
	}
	if len(split) > 2 {
		channels, err := strconv.ParseUint(split[2], 10, 16)
		if err != nil {
			return 0, Codec{}, &rtcerr.MalformedDescriptionError{Err: errMalformedRtpmap}
		}
		codec.Channels = uint16(channels)
	}

	return uint8(pt), codec, nil
}

// parseExtmap parses an attribute of the form "3 uri" or
// "3/recvonly uri".
func parseExtmap(value string) (HeaderExtension, error) {
	fields := strings.Fields(value)
	if len(fields) < 2 {
		return HeaderExtension{}, &rtcerr.MalformedDescriptionError{Err: errMalformedExtmap}
	}

	idPart := fields[0]
	ext := HeaderExtension{URI: fields[1]}
	if slash := strings.IndexByte(idPart, '/'); slash != -1 {
		ext.Direction = NewDirection(idPart[slash+1:])
		idPart = idPart[:slash]
	}

	id, err := strconv.Atoi(idPart)
	if err != nil {
		return HeaderExtension{}, &rtcerr.MalformedDescriptionError{Err: errMalformedExtmap}
	}
	ext.ID = id

	return ext, nil
}

func parseSSRCGroup(value string) (SSRCGroup, error) {
	fields := strings.Fields(value)
	if len(fields) < 2 {
		return SSRCGroup{}, &rtcerr.MalformedDescriptionError{Err: errMalformedSSRCGroup}
	}

	group := SSRCGroup{Semantics: fields[0]}
	for _, raw := range fields[1:] {
		ssrc, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return SSRCGroup{}, &rtcerr.MalformedDescriptionError{Err: errMalformedSSRCGroup}
		}
		group.SSRCs = append(group.SSRCs, SSRC(ssrc))
	}

	return group, nil
}

// parseParameterString splits "key=value;key=value" fmtp payloads the
// same way browsers do: keys lowercased, missing values allowed.
func parseParameterString(line string) map[string]string {
	parameters := make(map[string]string)
	for _, p := range strings.Split(line, ";") {
		pp := strings.SplitN(strings.TrimSpace(p), "=", 2)
		key := strings.ToLower(pp[0])
		var value string
		if len(pp) > 1 {
			value = pp[1]
		}
		parameters[key] = value
	}

	return parameters
}

// Marshal serializes the description back into a parsed SDP session,
// the inverse of DescriptionFromSDP. Validating, marshalling and
// re-extracting an accepted description yields a description that
// validates again.
func (d *SessionDescription) Marshal() (*sdp.SessionDescription, error) {
	out, err := sdp.NewJSEPSessionDescription(false)
	if err != nil {
		return nil, err
	}

	for i := range d.Sections {
		out.WithMedia(mediaSectionToSDP(&d.Sections[i]))
	}

	for _, bundle := range d.Bundles {
		out = out.WithValueAttribute(sdp.AttrKeyGroup, bundleGroupToken+" "+strings.Join(bundle.Mids, " "))
	}

	return out, nil
}

// MarshalText serializes the description to SDP text.
func (d *SessionDescription) MarshalText() ([]byte, error) {
	parsed, err := d.Marshal()
	if err != nil {
		return nil, err
	}

	return parsed.Marshal()
}

func mediaSectionToSDP(section *MediaSection) *sdp.MediaDescription { //nolint:cyclop
	port := 9
	if section.Rejected {
		port = 0
	}

	connection := &sdp.ConnectionInformation{
		NetworkType: "IN",
		AddressType: "IP4",
		Address:     &sdp.Address{Address: "0.0.0.0"},
	}

	var media *sdp.MediaDescription
	if section.Kind == MediaKindApplication {
		media = &sdp.MediaDescription{
			MediaName: sdp.MediaName{
				Media:   section.Kind.String(),
				Port:    sdp.RangedPort{Value: port},
				Protos:  []string{"UDP", "DTLS", "SCTP"},
				Formats: []string{"webrtc-datachannel"},
			},
			ConnectionInformation: connection,
		}
		media = media.WithValueAttribute("sctp-port", "5000")
	} else {
		pts := make([]int, 0, len(section.PayloadTypes))
		for pt := range section.PayloadTypes {
			pts = append(pts, int(pt))
		}
		sort.Ints(pts)

		media = &sdp.MediaDescription{
			MediaName: sdp.MediaName{
				Media:  section.Kind.String(),
				Port:   sdp.RangedPort{Value: port},
				Protos: []string{"UDP", "TLS", "RTP", "SAVPF"},
			},
			ConnectionInformation: connection,
		}
		media = media.WithPropertyAttribute(sdp.AttrKeyRTCPMux).
			WithPropertyAttribute(sdp.AttrKeyRTCPRsize)

		// WithCodec appends each payload type to the format list.
		for _, pt := range pts {
			codec := section.PayloadTypes[uint8(pt)]
			media = media.WithCodec(uint8(pt), codec.Name, codec.ClockRate, codec.Channels, parameterString(codec.Parameters))
		}
		if len(media.MediaName.Formats) == 0 {
			media.MediaName.Formats = []string{"0"}
		}

		for _, ext := range section.HeaderExtensions {
			value := strconv.Itoa(ext.ID)
			if ext.Direction != Direction(Unknown) {
				value += "/" + ext.Direction.String()
			}
			media = media.WithValueAttribute(sdp.AttrKeyExtMap, value+" "+ext.URI)
		}

		for _, rid := range section.Rids {
			value := rid.ID
			switch rid.Direction { //nolint:exhaustive
			case DirectionSendonly:
				value += " send"
			case DirectionRecvonly:
				value += " recv"
			}
			media = media.WithValueAttribute("rid", value)
		}

		if section.Simulcast && len(section.Rids) > 0 {
			direction := section.Rids[0].Direction
			if direction == Direction(Unknown) {
				direction = DirectionSendonly
			}
			ids := make([]string, 0, len(section.Rids))
			for _, rid := range section.Rids {
				ids = append(ids, rid.ID)
			}
			simulcastDir := "send"
			if direction == DirectionRecvonly {
				simulcastDir = "recv"
			}
			media = media.WithValueAttribute("simulcast", simulcastDir+" "+strings.Join(ids, ";"))
		}

		for _, group := range section.SSRCGroups {
			ids := make([]string, 0, len(group.SSRCs))
			for _, ssrc := range group.SSRCs {
				ids = append(ids, strconv.FormatUint(uint64(ssrc), 10))
			}
			media = media.WithValueAttribute(sdp.AttrKeySSRCGroup, group.Semantics+" "+strings.Join(ids, " "))
		}

		for _, stream := range section.Streams {
			for _, ssrc := range stream.SSRCs {
				media = media.WithValueAttribute(sdp.AttrKeySSRC, fmt.Sprintf("%d cname:%s", ssrc, stream.CName))
			}
		}
	}

	media = media.WithValueAttribute(sdp.AttrKeyMID, section.Mid)
	if section.Direction != Direction(Unknown) {
		media = media.WithPropertyAttribute(section.Direction.String())
	}

	return media
}

// parameterString renders a parameter map back into an fmtp payload,
// keys sorted for stable output.
func parameterString(parameters map[string]string) string {
	if len(parameters) == 0 {
		return ""
	}

	keys := make([]string, 0, len(parameters))
	for key := range parameters {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		if value := parameters[key]; value != "" {
			pairs = append(pairs, key+"="+value)
		} else {
			pairs = append(pairs, key)
		}
	}

	return strings.Join(pairs, ";")
}
